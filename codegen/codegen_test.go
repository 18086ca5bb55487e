package codegen

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSceneURLRoundTrip(t *testing.T) {
	url := SceneURL("abc123")
	assert.Equal(t, "https://prod.spline.design/abc123/scene.splinecode", url)

	id, err := ParseSceneURL(url)
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)
}

func TestParseSceneURL_Invalid(t *testing.T) {
	for _, input := range []string{
		"",
		"https://example.com/abc/scene.splinecode",
		"https://prod.spline.design/abc/other.file",
		"https://prod.spline.design//scene.splinecode",
	} {
		_, err := ParseSceneURL(input)
		assert.ErrorIs(t, err, ErrInvalidSceneURL, "input %q", input)
	}
}

func TestEmbedCode_Defaults(t *testing.T) {
	got := EmbedCode("s1", "", "", "")
	assert.Equal(t, "<iframe src='https://my.spline.design/s1/' frameborder='0' width='100%' height='100%'></iframe>", got)

	got = EmbedCode("s1", "640px", "480px", "1")
	assert.Contains(t, got, "width='640px'")
	assert.Contains(t, got, "height='480px'")
	assert.Contains(t, got, "frameborder='1'")
}

func TestRuntimeCode(t *testing.T) {
	tests := []struct {
		format string
		want   []string
	}{
		{FormatVanilla, []string{"import { Application } from '@splinetool/runtime';", "spline.load('https://prod.spline.design/s1/scene.splinecode')"}},
		{FormatReact, []string{"import Spline from '@splinetool/react-spline';", `scene="https://prod.spline.design/s1/scene.splinecode"`, "width: '100%'"}},
		{FormatNext, []string{"@splinetool/react-spline/next", "ssr: false"}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			code, err := RuntimeCode("s1", tt.format)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, code, w)
			}
			assert.NotContains(t, code, "%!")
		})
	}
}

func TestRuntimeCode_UnsupportedFormat(t *testing.T) {
	_, err := RuntimeCode("s1", "svelte")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	assert.Equal(t, "unsupported format: svelte", err.Error())
}

func TestObjectInteraction_Actions(t *testing.T) {
	tests := []struct {
		action string
		params Params
		want   []string
	}{
		{ActionMove, Params{"x": 1.5, "y": 2}, []string{"obj.position.x = 1.5;", "obj.position.y = 2;", "obj.position.z = 0;"}},
		{ActionRotate, Params{"rotY": 90}, []string{"obj.rotation.y = 90 * Math.PI / 180;", "obj.rotation.x = 0 * Math.PI / 180;"}},
		{ActionScale, nil, []string{"obj.scale.x = 1;", "obj.scale.z = 1;"}},
		{ActionColor, Params{"color": "#00ff00"}, []string{"obj.material.color.set('#00ff00');"}},
		{ActionColor, nil, []string{"obj.material.color.set('#ffffff');"}},
		{ActionVisibility, Params{"visible": false}, []string{"obj.visible = false;", "// fadeOut(obj, 1000);"}},
		{ActionVisibility, nil, []string{"obj.visible = true;", "// fadeIn(obj, 1000);"}},
		{ActionEmitEvent, Params{"eventName": "keyDown"}, []string{"obj.emitEvent('keyDown');"}},
		{ActionEmitEvent, nil, []string{"obj.emitEvent('mouseDown');"}},
		{ActionMaterial, Params{"materialId": "m1", "materialParams": map[string]any{"roughness": 0.2}}, []string{"findMaterialById('m1')", "roughness: 0.2,"}},
		{ActionAnimation, Params{"animationType": "scale", "duration": 2500, "easing": "linear", "loop": true}, []string{"const duration = 2500;", "const loop = true;", "const ease = progress;", "Scale up by 50%"}},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			code, err := ObjectInteraction("scene-1", "obj-1", tt.action, tt.params)
			require.NoError(t, err)

			assert.Contains(t, code, "spline.load('https://prod.spline.design/scene-1/scene.splinecode')")
			assert.Contains(t, code, "findObjectById('obj-1')")
			for _, w := range tt.want {
				assert.Contains(t, code, w)
			}
			assert.NotContains(t, code, "%!")
		})
	}
}

func TestObjectInteraction_UnsupportedAction(t *testing.T) {
	_, err := ObjectInteraction("s", "o", "teleport", nil)
	require.ErrorIs(t, err, ErrUnsupportedAction)
	assert.Equal(t, "unsupported action: teleport", err.Error())
}

func TestObjectInteraction_StringNumbersAreCoerced(t *testing.T) {
	code, err := ObjectInteraction("s", "o", ActionMove, Params{"x": "3"})
	require.NoError(t, err)
	assert.Contains(t, code, "obj.position.x = 3;")
}

func TestEventListener(t *testing.T) {
	code := EventListener("s1", "collision")
	assert.Contains(t, code, "spline.addEventListener('collision'")
	assert.Contains(t, code, "scene.splinecode")
}

func TestVariable_EncodesValueAsJSON(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{"hello", `spline.setVariable('score', "hello");`},
		{42.0, `spline.setVariable('score', 42);`},
		{true, `spline.setVariable('score', true);`},
	}
	for _, tt := range tests {
		code, err := Variable("s1", "score", tt.value)
		require.NoError(t, err)
		assert.Contains(t, code, tt.want)
	}
}

func TestSceneInteraction(t *testing.T) {
	for _, kind := range InteractionTypes {
		code, err := SceneInteraction("s1", kind, "", "")
		require.NoError(t, err, kind)
		assert.Contains(t, code, "spline.load(", kind)
	}

	code, err := SceneInteraction("s1", "eventListeners", "Ball", "")
	require.NoError(t, err)
	assert.Contains(t, code, "findObjectByName('Ball')")
	assert.NotContains(t, code, "{{object}}")

	code, err = SceneInteraction("s1", "custom", "", "console.log('mine');")
	require.NoError(t, err)
	assert.Contains(t, code, "console.log('mine');")

	_, err = SceneInteraction("s1", "teleport", "", "")
	assert.ErrorIs(t, err, ErrUnsupportedAction)
}

func TestComprehensiveExample(t *testing.T) {
	code := ComprehensiveExample("s9")
	assert.Equal(t, 2, strings.Count(code, "https://prod.spline.design/s9/scene.splinecode"))
	assert.Contains(t, code, "function setUpVariables()")
	assert.NotContains(t, code, "%!")
}

func TestRuntimeSetup(t *testing.T) {
	setup := RuntimeSetup()
	assert.Contains(t, setup, "npm install @splinetool/runtime")
	assert.Contains(t, setup, "<canvas id=\"canvas3d\"></canvas>")
}

func TestReactComponent(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		code, err := ReactComponent(ReactOptions{SceneID: "s1", Interactivity: "none", Responsive: true})
		require.NoError(t, err)
		assert.Contains(t, code, "const SplineScene = (")
		assert.NotContains(t, code, "handleOnLoad")
		assert.Contains(t, code, "width: width,")
		assert.Contains(t, code, "style={{")
		assert.Contains(t, code, "export default SplineScene;")
	})

	t.Run("basic", func(t *testing.T) {
		code, err := ReactComponent(ReactOptions{SceneID: "s1", ComponentName: "Hero"})
		require.NoError(t, err)
		assert.Contains(t, code, "const Hero = (")
		assert.Contains(t, code, "onLoad={handleOnLoad}")
		assert.Contains(t, code, "width: '100%',")
		assert.Less(t, strings.Index(code, "const Hero = ("), strings.Index(code, "const handleOnLoad"))
	})

	t.Run("advanced typescript", func(t *testing.T) {
		code, err := ReactComponent(ReactOptions{SceneID: "s1", Interactivity: "advanced", TypeScript: true})
		require.NoError(t, err)
		assert.Contains(t, code, "import React, { FC, useState, useEffect, useRef } from 'react';")
		assert.Contains(t, code, "interface SplineSceneProps")
		assert.Contains(t, code, "useState<any | null>(null)")
		assert.Contains(t, code, "(e: KeyboardEvent)")
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := ReactComponent(ReactOptions{SceneID: "s1", Interactivity: "extreme"})
		assert.Error(t, err)
	})
}
