package codegen

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrUnsupportedAction = errors.New("unsupported action")
	ErrInvalidSceneURL   = errors.New("invalid Spline scene URL format")
)

// Runtime output formats accepted by RuntimeCode.
const (
	FormatVanilla = "vanilla"
	FormatReact   = "react"
	FormatNext    = "next"
)

var sceneURLPattern = regexp.MustCompile(`^https://prod\.spline\.design/([^/]+)/scene\.splinecode$`)

// SceneURL is the public runtime URL of an exported scene.
func SceneURL(sceneID string) string {
	return "https://prod.spline.design/" + sceneID + "/scene.splinecode"
}

// ParseSceneURL extracts the scene id from a runtime URL.
func ParseSceneURL(url string) (string, error) {
	m := sceneURLPattern.FindStringSubmatch(strings.TrimSpace(url))
	if m == nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidSceneURL, url)
	}
	return m[1], nil
}

// EmbedCode renders the iframe embed for a scene.
func EmbedCode(sceneID, width, height, frameBorder string) string {
	if width == "" {
		width = "100%"
	}
	if height == "" {
		height = "100%"
	}
	if frameBorder == "" {
		frameBorder = "0"
	}
	return fmt.Sprintf("<iframe src='https://my.spline.design/%s/' frameborder='%s' width='%s' height='%s'></iframe>",
		sceneID, frameBorder, width, height)
}

// withRuntime wraps body in the loader that creates the Application and
// loads the scene. body is indented one level inside the load callback.
func withRuntime(sceneID, body string) string {
	var b strings.Builder
	b.WriteString("\nimport { Application } from '@splinetool/runtime';\n\n")
	b.WriteString("// Create a new Application instance\n")
	b.WriteString("const canvas = document.getElementById('canvas3d');\n")
	b.WriteString("const spline = new Application(canvas);\n\n")
	b.WriteString("// Load the scene\n")
	fmt.Fprintf(&b, "spline.load('%s').then(() => {\n", SceneURL(sceneID))
	b.WriteString("  console.log('Scene loaded successfully');\n")
	b.WriteString(indent(body, "  "))
	b.WriteString("});\n")
	return b.String()
}

// indent prefixes every non-empty line of s.
func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = prefix + line
		}
	}
	out := strings.Join(lines, "\n")
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}

// RuntimeSetup returns install commands and a bare HTML host page.
func RuntimeSetup() string {
	return `
# Installing @splinetool/runtime
npm install @splinetool/runtime

# For React projects, also install
npm install @splinetool/react-spline

# Basic HTML setup:
<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Spline Scene</title>
  <style>
    html, body { margin: 0; height: 100%; overflow: hidden; }
    #canvas3d { width: 100%; height: 100%; display: block; }
  </style>
</head>
<body>
  <canvas id="canvas3d"></canvas>
  <script type="module">
    import { Application } from '@splinetool/runtime';

    const canvas = document.getElementById('canvas3d');
    const spline = new Application(canvas);

    spline.load('https://prod.spline.design/YOUR_SCENE_ID/scene.splinecode')
      .then(() => {
        console.log('Scene loaded');
      });
  </script>
</body>
</html>
`
}

const vanillaBody = `
// Get an object by name
const myObject = spline.findObjectByName('Cube');

// Or get an object by ID
// const myObject = spline.findObjectById('...');

if (myObject) {
  myObject.position.y += 1;
  myObject.rotation.y = Math.PI / 4;

  spline.addEventListener('mouseDown', (e) => {
    if (e.target === myObject) {
      console.log('Object clicked!');
    }
  });

  myObject.emitEvent('mouseDown');
}
`

const reactComponentTemplate = `
import React, { useRef } from 'react';
%s
export default function Scene() {
  const objectRef = useRef();

  function onLoad(splineApp) {
    console.log('Scene loaded successfully');
    objectRef.current = splineApp.findObjectByName('Cube');
  }

  function handleClick() {
    if (objectRef.current) {
      objectRef.current.position.y += 1;
    }
  }

  return (
    <div style={{ width: '100%%', height: '100%%' }}>
      <button onClick={handleClick}>Move Object Up</button>
      <Spline
        scene="%s"
        onLoad={onLoad}
        onMouseDown={(e) => {
          console.log('Mouse down on:', e.target.name);
        }}
      />
    </div>
  );
}
`

const reactImport = "import Spline from '@splinetool/react-spline';\n"

const nextImport = `import dynamic from 'next/dynamic';

// Render the scene on the client only
const Spline = dynamic(() => import('@splinetool/react-spline/next'), {
  ssr: false,
  loading: () => <div>Loading 3D scene...</div>
});
`

// RuntimeCode renders starter code for a scene in the given format.
func RuntimeCode(sceneID, format string) (string, error) {
	switch format {
	case FormatVanilla, "":
		return withRuntime(sceneID, vanillaBody), nil
	case FormatReact:
		return fmt.Sprintf(reactComponentTemplate, reactImport, SceneURL(sceneID)), nil
	case FormatNext:
		return fmt.Sprintf(reactComponentTemplate, nextImport, SceneURL(sceneID)), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}
