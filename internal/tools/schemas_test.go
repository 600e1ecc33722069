package tools

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestTranscribeAudioRequestMarshaling(t *testing.T) {
	req := TranscribeAudioRequest{
		AudioPath: "/tmp/meeting.mp3",
		Wait:      true,
	}

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("Failed to marshal TranscribeAudioRequest: %v", err)
	}

	var jsonMap map[string]interface{}
	if err := json.Unmarshal(data, &jsonMap); err != nil {
		t.Fatalf("Failed to unmarshal JSON into map: %v", err)
	}

	if path, ok := jsonMap["audio_path"].(string); !ok || path != req.AudioPath {
		t.Errorf("Expected audio_path='%s', got '%v'", req.AudioPath, jsonMap["audio_path"])
	}
	if wait, ok := jsonMap["wait"].(bool); !ok || !wait {
		t.Errorf("Expected wait=true, got '%v'", jsonMap["wait"])
	}

	// Wait should be omitted when false
	data, _ = json.Marshal(TranscribeAudioRequest{AudioPath: "/tmp/meeting.mp3"})
	jsonMap = nil
	json.Unmarshal(data, &jsonMap)
	if _, exists := jsonMap["wait"]; exists {
		t.Error("Expected 'wait' field to be omitted when false")
	}
}

func TestTranscribeAudioResponseMarshaling(t *testing.T) {
	resp := TranscribeAudioResponse{
		Status:              "success",
		TranscriptionID:     "job-42",
		TranscriptionStatus: "completed",
		Text:                "the quick brown fox",
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Failed to marshal TranscribeAudioResponse: %v", err)
	}

	var jsonMap map[string]interface{}
	json.Unmarshal(data, &jsonMap)

	if status, ok := jsonMap["status"].(string); !ok || status != resp.Status {
		t.Errorf("Expected status='%s', got '%v'", resp.Status, jsonMap["status"])
	}
	if id, ok := jsonMap["transcription_id"].(string); !ok || id != resp.TranscriptionID {
		t.Errorf("Expected transcription_id='%s', got '%v'", resp.TranscriptionID, jsonMap["transcription_id"])
	}

	// Verify error field is omitted when empty
	if _, exists := jsonMap["error"]; exists {
		t.Error("Expected 'error' field to be omitted when empty")
	}

	// Test with error field
	respWithError := TranscribeAudioResponse{
		Status: "error",
		Error:  "failed to transcribe audio",
	}

	data, _ = json.Marshal(respWithError)
	json.Unmarshal(data, &jsonMap)

	if errMsg, ok := jsonMap["error"].(string); !ok || errMsg != respWithError.Error {
		t.Errorf("Expected error='%s', got '%v'", respWithError.Error, jsonMap["error"])
	}
}

func TestSummarizeTranscriptionResponseMarshaling(t *testing.T) {
	resp := SummarizeTranscriptionResponse{
		Status:      "success",
		NoteID:      "abc123",
		Summary:     "Planning meeting about the Q3 roadmap",
		ActionItems: []string{"Send the deck", "Book the room"},
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Failed to marshal SummarizeTranscriptionResponse: %v", err)
	}

	var jsonMap map[string]interface{}
	json.Unmarshal(data, &jsonMap)

	items, ok := jsonMap["action_items"].([]interface{})
	if !ok {
		t.Fatalf("Expected 'action_items' to be an array, got %T", jsonMap["action_items"])
	}
	if len(items) != len(resp.ActionItems) {
		t.Errorf("Expected %d action items, got %d", len(resp.ActionItems), len(items))
	}

	// action_items stays present even when empty so clients always see a list
	data, _ = json.Marshal(SummarizeTranscriptionResponse{Status: "success", ActionItems: []string{}})
	jsonMap = nil
	json.Unmarshal(data, &jsonMap)
	if _, exists := jsonMap["action_items"]; !exists {
		t.Error("Expected 'action_items' field to be present when empty")
	}

	var unmarshaledResp SummarizeTranscriptionResponse
	data, _ = json.Marshal(resp)
	if err := json.Unmarshal(data, &unmarshaledResp); err != nil {
		t.Fatalf("Failed to unmarshal SummarizeTranscriptionResponse: %v", err)
	}
	if !reflect.DeepEqual(unmarshaledResp, resp) {
		t.Errorf("Unmarshaled response doesn't match original: %+v vs %+v", unmarshaledResp, resp)
	}
}

func TestSearchNotesRequestMarshaling(t *testing.T) {
	req := SearchNotesRequest{
		Query: "planning meeting",
		Limit: 3,
	}

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("Failed to marshal SearchNotesRequest: %v", err)
	}

	var jsonMap map[string]interface{}
	json.Unmarshal(data, &jsonMap)

	if query, ok := jsonMap["query"].(string); !ok || query != req.Query {
		t.Errorf("Expected query='%s', got '%v'", req.Query, jsonMap["query"])
	}
	if limit, ok := jsonMap["limit"].(float64); !ok || int(limit) != req.Limit {
		t.Errorf("Expected limit=%d, got '%v'", req.Limit, jsonMap["limit"])
	}

	// Zero limit should be omitted so the server applies its default
	data, _ = json.Marshal(SearchNotesRequest{Query: "planning meeting"})
	jsonMap = nil
	json.Unmarshal(data, &jsonMap)
	if _, exists := jsonMap["limit"]; exists {
		t.Error("Expected 'limit' field to be omitted when zero")
	}
}

func TestGetNotesResponseMarshaling(t *testing.T) {
	resp := GetNotesResponse{
		Status: "success",
		Notes: []NoteSummary{
			{
				ID:          "note-1",
				Summary:     "First note",
				ActionItems: []string{"Follow up"},
				CreatedAt:   "2025-06-01T10:00:00Z",
			},
		},
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Failed to marshal GetNotesResponse: %v", err)
	}

	var unmarshaledResp GetNotesResponse
	if err := json.Unmarshal(data, &unmarshaledResp); err != nil {
		t.Fatalf("Failed to unmarshal GetNotesResponse: %v", err)
	}

	if !reflect.DeepEqual(unmarshaledResp, resp) {
		t.Errorf("Unmarshaled response doesn't match original: %+v vs %+v", unmarshaledResp, resp)
	}

	var jsonMap map[string]interface{}
	json.Unmarshal(data, &jsonMap)
	notes, ok := jsonMap["notes"].([]interface{})
	if !ok || len(notes) != 1 {
		t.Fatalf("Expected 'notes' to be an array of 1, got %v", jsonMap["notes"])
	}
	note := notes[0].(map[string]interface{})
	if note["id"] != "note-1" {
		t.Errorf("Expected note id 'note-1', got '%v'", note["id"])
	}
	// TranscriptionID should be omitted when the note was built from raw text
	if _, exists := note["transcription_id"]; exists {
		t.Error("Expected 'transcription_id' field to be omitted when empty")
	}
}
