package codegen

import (
	"fmt"
	"strings"
	"text/template"
)

// ReactOptions configures ReactComponent.
type ReactOptions struct {
	SceneID       string
	ComponentName string
	// Interactivity is "none", "basic" or "advanced".
	Interactivity string
	Responsive    bool
	TypeScript    bool
}

var reactTemplate = template.Must(template.New("react").Parse(`
import React{{if .TS}}, { FC{{if .Advanced}}, useState, useEffect, useRef{{end}} }{{else if .Advanced}}, { useState, useEffect, useRef }{{end}} from 'react';
import Spline from '@splinetool/react-spline';
{{if .TS}}
interface {{.Name}}Props {
  width?: string | number;
  height?: string | number;
  className?: string;
}

const {{.Name}}: FC<{{.Name}}Props> = ({ width = '100%', height = '100%', className = '' }) => {
{{- else}}
const {{.Name}} = ({ width = '100%', height = '100%', className = '' }) => {
{{- end}}
{{- if .Basic}}
  const handleOnLoad = (splineApp{{if .TS}}: any{{end}}) => {
    console.log('Spline scene loaded');

    const cube = splineApp.findObjectByName('Cube');
    if (cube) {
      console.log('Found cube:', cube);
    }
  };
{{end}}
{{- if .Advanced}}
  const [activeObject, setActiveObject] = useState{{if .TS}}<any | null>{{end}}(null);
  const splineRef = useRef{{if .TS}}<any | null>{{end}}(null);

  const handleMouseDown = (e{{if .TS}}: any{{end}}) => {
    setActiveObject(e.target);
    e.target.scale.multiplyScalar(1.1);
  };

  const handleMouseUp = (e{{if .TS}}: any{{end}}) => {
    if (e.target === activeObject) {
      e.target.scale.divideScalar(1.1);
    }
  };

  const handleMouseHover = (e{{if .TS}}: any{{end}}) => {
    document.body.style.cursor = 'pointer';
  };

  const handleOnLoad = (splineApp{{if .TS}}: any{{end}}) => {
    console.log('Spline scene loaded');
    splineRef.current = splineApp;
    console.log('Scene objects:', splineApp.getObjects().length);

    splineApp.addEventListener('mouseDown', handleMouseDown);
    splineApp.addEventListener('mouseUp', handleMouseUp);
    splineApp.addEventListener('mouseHover', handleMouseHover);
  };

  const animateObject = (objectName{{if .TS}}: string{{end}}) => {
    if (!splineRef.current) return;
    const obj = splineRef.current.findObjectByName(objectName);
    if (!obj) return;

    let startTime{{if .TS}}: number | null{{end}} = null;
    const duration = 1000;

    function animate(timestamp{{if .TS}}: number{{end}}) {
      if (!startTime) startTime = timestamp;
      const progress = Math.min((timestamp - startTime) / duration, 1);
      obj.rotation.y = progress * Math.PI * 2;
      if (progress < 1) {
        requestAnimationFrame(animate);
      }
    }

    requestAnimationFrame(animate);
  };

  useEffect(() => {
    const handleKeyDown = (e{{if .TS}}: KeyboardEvent{{end}}) => {
      if (e.key === 'r' && activeObject) {
        animateObject(activeObject.name);
      }
    };

    window.addEventListener('keydown', handleKeyDown);
    return () => window.removeEventListener('keydown', handleKeyDown);
  }, [activeObject]);
{{end}}
  return (
    <div
      style={{"{{"}}
        width: {{if .Responsive}}width{{else}}'100%'{{end}},
        height: {{if .Responsive}}height{{else}}'100%'{{end}},
        position: 'relative'
      {{"}}"}}
      className={className}
    >
      <Spline
        scene="{{.URL}}"{{if not .None}}
        onLoad={handleOnLoad}{{end}}
      />
    </div>
  );
};

export default {{.Name}};
`))

// ReactComponent renders a React component that hosts the scene.
func ReactComponent(opts ReactOptions) (string, error) {
	name := opts.ComponentName
	if name == "" {
		name = "SplineScene"
	}
	level := opts.Interactivity
	if level == "" {
		level = "basic"
	}
	if level != "none" && level != "basic" && level != "advanced" {
		return "", fmt.Errorf("%w: interactivity %s", ErrUnsupportedFormat, level)
	}

	data := struct {
		Name                  string
		URL                   string
		TS                    bool
		Responsive            bool
		None, Basic, Advanced bool
	}{
		Name:       name,
		URL:        SceneURL(opts.SceneID),
		TS:         opts.TypeScript,
		Responsive: opts.Responsive,
		None:       level == "none",
		Basic:      level == "basic",
		Advanced:   level == "advanced",
	}

	var b strings.Builder
	if err := reactTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render component: %w", err)
	}
	return b.String(), nil
}
