package tools

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/wricardo/mcp-training/splinemcp/spline"
)

// recordedRequest is one call seen by the fake Spline API.
type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   map[string]any
}

// fakeSpline answers every request with status and body, recording calls.
type fakeSpline struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   int
	body     string
}

func (f *fakeSpline) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	raw, _ := io.ReadAll(r.Body)
	if len(raw) > 0 {
		json.Unmarshal(raw, &body)
	}

	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Body: body})
	status, resp := f.status, f.body
	f.mu.Unlock()

	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(resp))
}

func (f *fakeSpline) last(t *testing.T) recordedRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		t.Fatal("Expected an upstream request")
	}
	return f.requests[len(f.requests)-1]
}

func newFakeRegistry(t *testing.T, status int, body string) (*Registry, *fakeSpline) {
	t.Helper()
	fake := &fakeSpline{status: status, body: body}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	logger := log.New(io.Discard, "", 0)
	client := spline.NewClient(spline.Config{BaseURL: server.URL, APIKey: "k", Logger: logger})
	return New(Deps{Spline: client, HTTP: server.Client(), Logger: logger}), fake
}

func call(t *testing.T, reg *Registry, name string, args map[string]any) (string, bool) {
	t.Helper()
	res, err := reg.Call(context.Background(), name, args)
	if err != nil {
		t.Fatalf("%s returned protocol error: %v", name, err)
	}
	return resultText(t, res), res.IsError
}

func TestGetScene_UpstreamNotFound(t *testing.T) {
	reg, _ := newFakeRegistry(t, http.StatusNotFound, `{"message":"Scene not found"}`)

	text, isError := call(t, reg, "getScene", map[string]any{"sceneId": "missing"})
	if !isError {
		t.Error("Expected isError for upstream 404")
	}
	if text != "Error retrieving scene: Scene not found (status 404)" {
		t.Errorf("Unexpected error text: %q", text)
	}
}

func TestGetScene_PrettyPrints(t *testing.T) {
	reg, fake := newFakeRegistry(t, http.StatusOK, `{"id":"s1","name":"Demo"}`)

	text, isError := call(t, reg, "getScene", map[string]any{"sceneId": "s1"})
	if isError {
		t.Fatalf("Unexpected error: %s", text)
	}
	if text != "{\n  \"id\": \"s1\",\n  \"name\": \"Demo\"\n}" {
		t.Errorf("Expected 2-space indented JSON, got %q", text)
	}
	if req := fake.last(t); req.Method != http.MethodGet || req.Path != "/scenes/s1" {
		t.Errorf("Expected GET /scenes/s1, got %s %s", req.Method, req.Path)
	}
}

func TestGetScenes_Query(t *testing.T) {
	reg, fake := newFakeRegistry(t, http.StatusOK, `[]`)

	call(t, reg, "getScenes", map[string]any{"limit": 5.0, "projectId": "p1"})
	req := fake.last(t)
	for _, want := range []string{"limit=5", "offset=0", "projectId=p1"} {
		if !strings.Contains(req.Query, want) {
			t.Errorf("Expected query to contain %s, got %s", want, req.Query)
		}
	}
}

func TestCreateObject_Defaults(t *testing.T) {
	reg, fake := newFakeRegistry(t, http.StatusOK, `{"id":"obj-9"}`)

	text, _ := call(t, reg, "createObject", map[string]any{"sceneId": "s1", "type": "cube", "name": "Box"})
	if text != "Object created successfully with ID: obj-9" {
		t.Errorf("Unexpected reply: %q", text)
	}

	req := fake.last(t)
	if req.Method != http.MethodPost || req.Path != "/scenes/s1/objects" {
		t.Errorf("Expected POST /scenes/s1/objects, got %s %s", req.Method, req.Path)
	}
	scale, _ := req.Body["scale"].(map[string]any)
	if scale["x"] != 1.0 || scale["y"] != 1.0 || scale["z"] != 1.0 {
		t.Errorf("Expected unit scale, got %v", req.Body["scale"])
	}
	position, _ := req.Body["position"].(map[string]any)
	if position["x"] != 0.0 {
		t.Errorf("Expected zero position, got %v", req.Body["position"])
	}
}

func TestCreateObject_InvalidArgumentsSkipUpstream(t *testing.T) {
	reg, fake := newFakeRegistry(t, http.StatusOK, `{}`)

	_, err := reg.Call(context.Background(), "createObject", map[string]any{"sceneId": "s1", "type": "teapot"})
	if !errors.Is(err, ErrInvalidArguments) {
		t.Fatalf("Expected ErrInvalidArguments, got %v", err)
	}
	if len(fake.requests) != 0 {
		t.Errorf("Expected no upstream calls, got %d", len(fake.requests))
	}
}

func TestGetVariable(t *testing.T) {
	reg, _ := newFakeRegistry(t, http.StatusOK, `{"variables":[{"name":"score","value":3}]}`)

	text, isError := call(t, reg, "getVariable", map[string]any{"sceneId": "s1", "variableName": "score"})
	if isError || !strings.Contains(text, `"value": 3`) {
		t.Errorf("Expected the score variable, got %q", text)
	}

	text, isError = call(t, reg, "getVariable", map[string]any{"sceneId": "s1", "variableName": "lives"})
	if !isError || text != `Variable "lives" not found` {
		t.Errorf("Expected not found error, got %q (isError=%v)", text, isError)
	}
}

func TestSetVariable_CoercesValue(t *testing.T) {
	reg, fake := newFakeRegistry(t, http.StatusOK, `{}`)

	text, _ := call(t, reg, "setVariable", map[string]any{
		"sceneId": "s1", "variableName": "score", "value": "42", "variableType": "number",
	})
	if text != `Variable "score" set to 42` {
		t.Errorf("Unexpected reply: %q", text)
	}
	req := fake.last(t)
	if req.Method != http.MethodPut || req.Path != "/scenes/s1/variables/score" {
		t.Errorf("Expected PUT /scenes/s1/variables/score, got %s %s", req.Method, req.Path)
	}
	if req.Body["value"] != 42.0 || req.Body["type"] != "number" {
		t.Errorf("Expected coerced number, got %v", req.Body)
	}
}

func TestConfigureColorLayer_AppliesDefaults(t *testing.T) {
	reg, fake := newFakeRegistry(t, http.StatusOK, `{}`)

	text, _ := call(t, reg, "configureColorLayer", map[string]any{
		"sceneId": "s1", "materialId": "m1", "layerId": "l1", "color": "#ff0000",
	})
	if text != "Color layer l1 configured successfully" {
		t.Errorf("Unexpected reply: %q", text)
	}
	req := fake.last(t)
	if req.Path != "/scenes/s1/materials/m1/layers/l1" {
		t.Errorf("Unexpected path %s", req.Path)
	}
	params, _ := req.Body["params"].(map[string]any)
	if params["color"] != "#ff0000" || params["intensity"] != 1.0 {
		t.Errorf("Expected color and default intensity, got %v", params)
	}
}

func TestConfigureTransitionAction(t *testing.T) {
	reg, fake := newFakeRegistry(t, http.StatusOK, `{}`)

	text, _ := call(t, reg, "configureTransitionAction", map[string]any{
		"sceneId": "s1", "actionId": "a1", "targetState": "open", "duration": 300.0,
	})
	if text != "Transition action a1 configured successfully" {
		t.Errorf("Unexpected reply: %q", text)
	}
	req := fake.last(t)
	if req.Method != http.MethodPut || req.Body["type"] != "transition" {
		t.Errorf("Expected PUT with transition type, got %s %v", req.Method, req.Body)
	}
}

func TestCreateJoint_StructSchema(t *testing.T) {
	reg, fake := newFakeRegistry(t, http.StatusOK, `{"jointId":"j7"}`)

	text, isError := call(t, reg, "createJoint", map[string]any{
		"sceneId": "s1", "jointType": "hinge", "bodyAId": "a", "bodyBId": "b",
		"parameters": map[string]any{"axis": map[string]any{"x": 0.0, "y": 1.0, "z": 0.0}},
	})
	if isError {
		t.Fatalf("Unexpected error: %s", text)
	}
	if text != "Created hinge joint between objects a and b (Joint ID: j7)" {
		t.Errorf("Unexpected reply: %q", text)
	}
	if req := fake.last(t); req.Path != "/scenes/s1/physics/joints" {
		t.Errorf("Unexpected path %s", req.Path)
	}
}

func TestCopyBetweenScenes_Counts(t *testing.T) {
	reg, _ := newFakeRegistry(t, http.StatusOK, `{"copiedObjects":["o1","o2"],"copiedMaterials":["m1"]}`)

	text, _ := call(t, reg, "copyBetweenScenes", map[string]any{
		"projectId": "p1", "sourceSceneId": "a", "targetSceneId": "b",
	})
	if text != "Copied 2 objects, 1 materials between scenes" {
		t.Errorf("Unexpected reply: %q", text)
	}
}

func TestListSnapshots(t *testing.T) {
	reg, fake := newFakeRegistry(t, http.StatusOK, `{"total":1,"items":[{"id":"snap-1"}]}`)

	text, _ := call(t, reg, "listSnapshots", map[string]any{"sceneId": "s1", "tags": []any{"a", "b"}})
	if !strings.HasPrefix(text, "Found 1 snapshots for scene s1\n\n") {
		t.Errorf("Unexpected summary: %q", text)
	}
	if !strings.Contains(text, `"id": "snap-1"`) {
		t.Errorf("Expected items in reply, got %q", text)
	}
	if req := fake.last(t); !strings.Contains(req.Query, "tags=a%2Cb") {
		t.Errorf("Expected comma-joined tags, got %s", req.Query)
	}
}

func TestSendWebhookData(t *testing.T) {
	var received map[string]any
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer hook.Close()

	reg, _ := newFakeRegistry(t, http.StatusOK, `{}`)
	text, isError := call(t, reg, "sendWebhookData", map[string]any{
		"webhookUrl": hook.URL, "data": map[string]any{"temp": 72.0},
	})
	if isError {
		t.Fatalf("Unexpected error: %s", text)
	}
	if !strings.HasPrefix(text, "Data sent successfully to webhook: "+hook.URL) {
		t.Errorf("Unexpected reply: %q", text)
	}
	if received["temp"] != 72.0 {
		t.Errorf("Expected webhook to receive temp=72, got %v", received)
	}
}

func TestSendWebhookData_InvalidURL(t *testing.T) {
	reg, _ := newFakeRegistry(t, http.StatusOK, `{}`)
	text, isError := call(t, reg, "sendWebhookData", map[string]any{
		"webhookUrl": "not a url", "data": map[string]any{},
	})
	if !isError || !strings.HasPrefix(text, "Error sending data to webhook:") {
		t.Errorf("Expected invalid url error, got %q", text)
	}
}

func TestGenerateTextWithOpenAI_MissingKey(t *testing.T) {
	reg, _ := newFakeRegistry(t, http.StatusOK, `{}`)
	text, isError := call(t, reg, "generateTextWithOpenAI", map[string]any{"prompt": "hi"})
	if !isError || !strings.Contains(text, "OPENAI_API_KEY") {
		t.Errorf("Expected missing key error, got %q", text)
	}
}

func TestRuntimeTools_NoUpstream(t *testing.T) {
	reg, fake := newFakeRegistry(t, http.StatusOK, `{}`)

	text, isError := call(t, reg, "generateAnimationCode", map[string]any{
		"sceneId": "s1", "objectId": "o1", "animationType": "scale",
	})
	if isError || !strings.Contains(text, "findObjectById('o1')") {
		t.Errorf("Unexpected animation code: %q", text)
	}

	text, isError = call(t, reg, "generateSceneInteractionCode", map[string]any{
		"sceneId": "s1", "interactionType": "eventListeners", "options": map[string]any{"objectName": "Ball"},
	})
	if isError || !strings.Contains(text, "findObjectByName('Ball')") {
		t.Errorf("Unexpected interaction code: %q", text)
	}

	if len(fake.requests) != 0 {
		t.Errorf("Code generators must not call upstream, got %d calls", len(fake.requests))
	}
}
