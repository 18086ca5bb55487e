package prompts

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, name string, args map[string]string) string {
	t.Helper()
	res, err := Get(context.Background(), name, args)
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)
	assert.Equal(t, mcp.RoleUser, res.Messages[0].Role)
	text, ok := res.Messages[0].Content.(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestCatalog_NamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, spec := range Catalog() {
		assert.False(t, seen[spec.Prompt.Name], spec.Prompt.Name)
		seen[spec.Prompt.Name] = true
		assert.NotEmpty(t, spec.Prompt.Description, spec.Prompt.Name)

		require.NotEmpty(t, spec.Prompt.Arguments, spec.Prompt.Name)
		assert.Equal(t, "sceneId", spec.Prompt.Arguments[0].Name)
		assert.True(t, spec.Prompt.Arguments[0].Required)
	}
	assert.Len(t, seen, 10)
}

func TestCreateCube_Defaults(t *testing.T) {
	text := render(t, "create-cube", map[string]string{"sceneId": "s1"})
	assert.Contains(t, text, "Create a cube in scene s1")
	assert.Contains(t, text, "- Name: New Cube")
	assert.Contains(t, text, "- Size: 1\n")
	assert.Contains(t, text, "- Color: #ffffff")
	assert.Contains(t, text, `- Position: {"x":0,"y":0,"z":0}`)
	assert.Contains(t, text, "Set the scale to 1 for all three dimensions.")
}

func TestCreateCube_Arguments(t *testing.T) {
	text := render(t, "create-cube", map[string]string{
		"sceneId":  "s1",
		"size":     "2.5",
		"position": `{"y":3}`,
	})
	assert.Contains(t, text, "- Size: 2.5")
	assert.Contains(t, text, `{"x":0,"y":3,"z":0}`)
}

func TestRequiredArgumentMissing(t *testing.T) {
	_, err := Get(context.Background(), "create-cube", map[string]string{})
	require.ErrorIs(t, err, ErrInvalidArguments)
	assert.Contains(t, err.Error(), "sceneId is required")

	_, err = Get(context.Background(), "create-apply-material", map[string]string{"sceneId": "s"})
	assert.ErrorContains(t, err, "objectId is required")
}

func TestInvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args map[string]string
		want string
	}{
		{"create-apply-material", map[string]string{"sceneId": "s", "objectId": "o", "materialType": "glass"}, "materialType must be one of"},
		{"create-apply-material", map[string]string{"sceneId": "s", "objectId": "o", "roughness": "1.5"}, "roughness must be between 0 and 1"},
		{"create-rotation-animation", map[string]string{"sceneId": "s", "objectId": "o", "duration": "50"}, "duration must be at least 100"},
		{"create-cube", map[string]string{"sceneId": "s", "size": "big"}, "size must be a number"},
		{"create-basic-scene", map[string]string{"sceneId": "s", "objects": "[]"}, "at least one object"},
		{"create-basic-scene", map[string]string{"sceneId": "s", "objects": "{oops"}, "objects must be valid JSON"},
		{"create-basic-scene", map[string]string{"sceneId": "s", "objects": `[{"type":"torus","name":"a","position":{}}]`}, "objects[0].type"},
		{"create-api-interaction", map[string]string{"sceneId": "s", "apiUrl": "not a url", "responseMapping": `[{"field":"a"}]`}, "apiUrl must be a valid URL"},
		{"create-react-integration", map[string]string{"sceneId": "s", "features": "loading,teleport"}, "features must be drawn from"},
		{"setup-data-visualization", map[string]string{"sceneId": "s"}, "dataType is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Get(context.Background(), tt.name, tt.args)
			require.ErrorIs(t, err, ErrInvalidArguments)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCreateBasicScene(t *testing.T) {
	text := render(t, "create-basic-scene", map[string]string{
		"sceneId":      "s1",
		"objects":      `[{"type":"cube","name":"Box","position":{"x":1,"y":2,"z":3}},{"type":"sphere","name":"Ball","position":{"x":0,"y":0,"z":0},"color":"#ff0000"}]`,
		"includeLight": "false",
	})
	assert.Contains(t, text, "Object 1:\n- Type: cube\n- Name: Box\n- Position: {\"x\":1,\"y\":2,\"z\":3}\n- Color: #ffffff")
	assert.Contains(t, text, "Object 2:\n- Type: sphere\n- Name: Ball")
	assert.Contains(t, text, "- Color: #ff0000")
	assert.NotContains(t, text, "directional light")

	text = render(t, "create-basic-scene", map[string]string{
		"sceneId": "s1",
		"objects": `[{"type":"plane","name":"Floor","position":{"x":0,"y":0,"z":0}}]`,
	})
	assert.Contains(t, text, "Also create a directional light to illuminate the scene.")
}

func TestCreateRotationAnimation_TriggerMapping(t *testing.T) {
	tests := map[string]string{"click": "mouseDown", "hover": "mouseOver", "sceneStart": "sceneStart"}
	for trigger, event := range tests {
		text := render(t, "create-rotation-animation", map[string]string{"sceneId": "s", "objectId": "o", "triggerOn": trigger})
		assert.Contains(t, text, "Create a new event of type "+event+" that triggers this state")
	}

	text := render(t, "create-rotation-animation", map[string]string{"sceneId": "s", "objectId": "o"})
	assert.Contains(t, text, "- Rotation Axis: y")
	assert.Contains(t, text, "- Duration: 2000 ms")
	assert.Contains(t, text, "changes the y rotation of the object by 360 degrees")
	assert.Contains(t, text, "- Easing: easeInOut")
}

func TestCreateColorChangeInteraction(t *testing.T) {
	text := render(t, "create-color-change-interaction", map[string]string{"sceneId": "s", "objectId": "o", "hoverColor": "#123456"})
	assert.Contains(t, text, "- Hover Color: #123456")
	assert.Contains(t, text, "A 'hover' state with the object's color set to #123456")
	assert.Contains(t, text, "Set the transition duration for all states to 500 ms")
}

func TestCreateAPIInteraction(t *testing.T) {
	mapping := `[{"field":"data.temp","targetObjectId":"o2","property":"position.y"}]`

	text := render(t, "create-api-interaction", map[string]string{"sceneId": "s", "apiUrl": "https://api.example.com/t", "responseMapping": mapping})
	assert.Contains(t, text, "- Method: GET")
	assert.Contains(t, text, "The API should be called when the scene starts.")
	assert.Contains(t, text, "Mapping 1:\n- Response Field: data.temp\n- Target Object: o2\n- Property to Update: position.y")
	assert.Contains(t, text, "3. Configure the API to be called on scene start")

	text = render(t, "create-api-interaction", map[string]string{"sceneId": "s", "apiUrl": "https://api.example.com/t", "responseMapping": mapping, "triggerObjectId": "btn", "method": "POST"})
	assert.Contains(t, text, "The API should be triggered when object btn is clicked.")
	assert.Contains(t, text, "3. Create a mouseDown event for object btn that triggers the API call")
}

func TestCreateInteractiveScene(t *testing.T) {
	text := render(t, "create-interactive-scene", map[string]string{"sceneId": "s", "interactivity": "advanced", "format": "next", "responsive": "false"})
	assert.Contains(t, text, `Create an interactive advanced scene for Spline scene ID "s" using Next.js components`)
	assert.Contains(t, text, "I want the code to be fixed-size")
	assert.Contains(t, text, "- Camera controls")
}

func TestCreateAnimationSequence(t *testing.T) {
	text := render(t, "create-animation-sequence", map[string]string{"sceneId": "s", "objectNames": "Cube, Sphere"})
	assert.Contains(t, text, "where objects animate one after another in sequence.")
	assert.Contains(t, text, "- Object 1: \"Cube\"\n- Object 2: \"Sphere\"\n")
	assert.Contains(t, text, "Total animation duration: 2000ms")
}

func TestCreateReactIntegration(t *testing.T) {
	text := render(t, "create-react-integration", map[string]string{"sceneId": "s", "framework": "next", "features": "performance, loading"})
	assert.Contains(t, text, "Create a complete Next integration")
	assert.Contains(t, text, "- Optimized loading with proper loading states and fallbacks\n- Performance optimizations")
	assert.Contains(t, text, "integrate it with next routing")

	text = render(t, "create-react-integration", map[string]string{"sceneId": "s", "features": `["controls"]`})
	assert.Contains(t, text, "Create a complete React integration")
	assert.Contains(t, text, "- Custom UI controls")
}

func TestSetupDataVisualization(t *testing.T) {
	text := render(t, "setup-data-visualization", map[string]string{"sceneId": "s1", "dataType": "weather"})
	assert.Contains(t, text, "I want to create a real-time weather data visualization in my Spline scene (ID: s1)")
	assert.Contains(t, text, "should use bars to represent the data")
	assert.Contains(t, text, "temperature, humidity, pressure, windSpeed")
}

func TestGet_UnknownPrompt(t *testing.T) {
	_, err := Get(context.Background(), "nope", nil)
	assert.Error(t, err)
}

func TestRegister_ServesOverJSONRPC(t *testing.T) {
	s := server.NewMCPServer("test", "1.0.0")
	Register(s)
	ctx := context.Background()

	msg := s.HandleMessage(ctx, []byte(`{"jsonrpc":"2.0","id":1,"method":"prompts/list"}`))
	resp, ok := msg.(mcp.JSONRPCResponse)
	require.True(t, ok, "got %T", msg)
	list, ok := resp.Result.(mcp.ListPromptsResult)
	require.True(t, ok)
	assert.Len(t, list.Prompts, 10)

	msg = s.HandleMessage(ctx, []byte(`{"jsonrpc":"2.0","id":2,"method":"prompts/get","params":{"name":"create-cube","arguments":{}}}`))
	rpcErr, ok := msg.(mcp.JSONRPCError)
	require.True(t, ok, "got %T", msg)
	assert.Contains(t, rpcErr.Error.Message, "sceneId is required")
}
