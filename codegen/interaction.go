package codegen

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Object interaction actions accepted by ObjectInteraction.
const (
	ActionMove       = "move"
	ActionRotate     = "rotate"
	ActionScale      = "scale"
	ActionColor      = "color"
	ActionVisibility = "visibility"
	ActionEmitEvent  = "emitEvent"
	ActionMaterial   = "material"
	ActionAnimation  = "animation"
)

// Actions lists every action ObjectInteraction understands.
var Actions = []string{
	ActionMove, ActionRotate, ActionScale, ActionColor,
	ActionVisibility, ActionEmitEvent, ActionMaterial, ActionAnimation,
}

// Params are loosely typed snippet parameters as they arrive from JSON.
type Params map[string]any

func (p Params) num(key string, def float64) string {
	v, ok := p[key]
	if !ok || v == nil {
		return formatNum(def)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return formatNum(def)
	}
	return formatNum(f)
}

func (p Params) str(key, def string) string {
	if v, ok := p[key]; ok && v != nil {
		if s := cast.ToString(v); s != "" {
			return s
		}
	}
	return def
}

func (p Params) boolean(key string, def bool) bool {
	v, ok := p[key]
	if !ok || v == nil {
		return def
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return def
	}
	return b
}

func (p Params) object(key string) Params {
	m, err := cast.ToStringMapE(p[key])
	if err != nil {
		return Params{}
	}
	return Params(m)
}

func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// ObjectInteraction renders runtime code that applies action to one object.
// An unknown action returns ErrUnsupportedAction.
func ObjectInteraction(sceneID, objectID, action string, params Params) (string, error) {
	if params == nil {
		params = Params{}
	}

	var snippet string
	switch action {
	case ActionMove:
		snippet = moveSnippet(objectID, params)
	case ActionRotate:
		snippet = rotateSnippet(objectID, params)
	case ActionScale:
		snippet = fmt.Sprintf(`
// Scale object
const obj = spline.findObjectById('%s');
obj.scale.x = %s;
obj.scale.y = %s;
obj.scale.z = %s;
`, objectID, params.num("scaleX", 1), params.num("scaleY", 1), params.num("scaleZ", 1))
	case ActionColor:
		snippet = fmt.Sprintf(`
// Change object color
const obj = spline.findObjectById('%s');
if (obj.material) {
  obj.material.color.set('%s');
}

// Emissive color can be changed the same way
if (obj.material && obj.material.emissive) {
  obj.material.emissive.set('#000000');
  obj.material.emissiveIntensity = 0.5;
}
`, objectID, params.str("color", "#ffffff"))
	case ActionVisibility:
		snippet = visibilitySnippet(objectID, params)
	case ActionEmitEvent:
		eventName := params.str("eventName", "mouseDown")
		snippet = fmt.Sprintf(`
// Emit event on object
const obj = spline.findObjectById('%[1]s');
obj.emitEvent('%[2]s');

// Listen for the same event on this object
spline.addEventListener('%[2]s', (e) => {
  if (e.target.id === '%[1]s') {
    console.log('Event %[2]s triggered on object');
  }
});

// Available events: mouseDown, mouseUp, mouseHover, mouseOut, keyDown, keyUp, collision
`, objectID, eventName)
	case ActionMaterial:
		snippet = materialSnippet(objectID, params)
	case ActionAnimation:
		snippet = animationSnippet(objectID, params)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedAction, action)
	}

	return withRuntime(sceneID, snippet), nil
}

func moveSnippet(objectID string, p Params) string {
	x, y, z := p.num("x", 0), p.num("y", 0), p.num("z", 0)
	return fmt.Sprintf(`
// Move object
const obj = spline.findObjectById('%s');
obj.position.x = %s;
obj.position.y = %s;
obj.position.z = %s;

// Smooth alternative (ease-out-cubic)
let startTime = null;
const duration = 1000;
const startPos = { ...obj.position };
const targetPos = { x: %s, y: %s, z: %s };

function animateMove(timestamp) {
  if (!startTime) startTime = timestamp;
  const progress = Math.min((timestamp - startTime) / duration, 1);
  const easeOut = 1 - Math.pow(1 - progress, 3);

  obj.position.x = startPos.x + (targetPos.x - startPos.x) * easeOut;
  obj.position.y = startPos.y + (targetPos.y - startPos.y) * easeOut;
  obj.position.z = startPos.z + (targetPos.z - startPos.z) * easeOut;

  if (progress < 1) {
    requestAnimationFrame(animateMove);
  }
}

// requestAnimationFrame(animateMove);
`, objectID, x, y, z, x, y, z)
}

func rotateSnippet(objectID string, p Params) string {
	rx, ry, rz := p.num("rotX", 0), p.num("rotY", 0), p.num("rotZ", 0)
	return fmt.Sprintf(`
// Rotate object (degrees converted to radians)
const obj = spline.findObjectById('%s');
obj.rotation.x = %s * Math.PI / 180;
obj.rotation.y = %s * Math.PI / 180;
obj.rotation.z = %s * Math.PI / 180;

// Smooth alternative (ease-in-out)
let startTime = null;
const duration = 1000;
const startRot = { ...obj.rotation };
const targetRot = {
  x: %s * Math.PI / 180,
  y: %s * Math.PI / 180,
  z: %s * Math.PI / 180
};

function animateRotation(timestamp) {
  if (!startTime) startTime = timestamp;
  const progress = Math.min((timestamp - startTime) / duration, 1);
  const easeInOut = progress < 0.5 ? 2 * progress * progress : 1 - Math.pow(-2 * progress + 2, 2) / 2;

  obj.rotation.x = startRot.x + (targetRot.x - startRot.x) * easeInOut;
  obj.rotation.y = startRot.y + (targetRot.y - startRot.y) * easeInOut;
  obj.rotation.z = startRot.z + (targetRot.z - startRot.z) * easeInOut;

  if (progress < 1) {
    requestAnimationFrame(animateRotation);
  }
}

// requestAnimationFrame(animateRotation);
`, objectID, rx, ry, rz, rx, ry, rz)
}

func visibilitySnippet(objectID string, p Params) string {
	visible := p.boolean("visible", true)
	fade := "fadeOut(obj, 1000);"
	if visible {
		fade = "fadeIn(obj, 1000);"
	}
	return fmt.Sprintf(`
// Change object visibility
const obj = spline.findObjectById('%s');
obj.visible = %t;

function fade(obj, from, to, duration, done) {
  let startTime = null;
  obj.material.transparent = true;
  obj.material.opacity = from;

  function animate(timestamp) {
    if (!startTime) startTime = timestamp;
    const progress = Math.min((timestamp - startTime) / duration, 1);
    obj.material.opacity = from + (to - from) * progress;
    if (progress < 1) {
      requestAnimationFrame(animate);
    } else if (done) {
      done();
    }
  }

  requestAnimationFrame(animate);
}

function fadeIn(obj, duration = 1000) {
  obj.visible = true;
  fade(obj, 0, 1, duration);
}

function fadeOut(obj, duration = 1000) {
  fade(obj, 1, 0, duration, () => {
    obj.visible = false;
    obj.material.opacity = 1;
  });
}

// %s
`, objectID, visible, fade)
}

func materialSnippet(objectID string, p Params) string {
	mp := p.object("materialParams")
	return fmt.Sprintf(`
// Change object material
const obj = spline.findObjectById('%s');

// Option 1: apply an existing material
const material = spline.findMaterialById('%s');
if (material) {
  obj.material = material;
}

// Option 2: build a new material
const newMaterial = new THREE.MeshStandardMaterial({
  color: '%s',
  roughness: %s,
  metalness: %s,
  transparent: %t,
  opacity: %s
});

// obj.material = newMaterial;
`, objectID, p.str("materialId", ""), mp.str("color", "#ffffff"),
		mp.num("roughness", 0.5), mp.num("metalness", 0), mp.boolean("transparent", false), mp.num("opacity", 1))
}

// easingExpr maps an easing name to a JS expression over progress.
func easingExpr(name string) string {
	switch name {
	case "linear":
		return "progress"
	case "easeIn":
		return "progress * progress"
	case "easeOut":
		return "1 - Math.pow(1 - progress, 2)"
	default:
		return "progress < 0.5 ? 2 * progress * progress : 1 - Math.pow(-2 * progress + 2, 2) / 2"
	}
}

func animationSnippet(objectID string, p Params) string {
	var body string
	switch p.str("animationType", "rotate") {
	case "move":
		body = `
  // Move up by one unit
  obj.position.y = start.position.y + 1 * ease;`
	case "scale":
		body = `
  // Scale up by 50%
  obj.scale.x = start.scale.x * (1 + 0.5 * ease);
  obj.scale.y = start.scale.y * (1 + 0.5 * ease);
  obj.scale.z = start.scale.z * (1 + 0.5 * ease);`
	case "color":
		body = `
  // Blend towards the target color
  if (obj.material) {
    obj.material.color.copy(start.color).lerp(targetColor, ease);
  }`
	default:
		body = `
  // Full turn around the x axis
  obj.rotation.x = start.rotation.x + Math.PI * 2 * ease;`
	}

	return fmt.Sprintf(`
// Animate object
const obj = spline.findObjectById('%s');
const start = {
  position: { ...obj.position },
  rotation: { ...obj.rotation },
  scale: { ...obj.scale },
  color: obj.material ? obj.material.color.clone() : null
};
const targetColor = obj.material ? obj.material.color.clone().set('%s') : null;
const duration = %s;
const loop = %t;
let startTime = null;
let animationFrame;

function animate(timestamp) {
  if (!startTime) startTime = timestamp;
  const progress = Math.min((timestamp - startTime) / duration, 1);
  const ease = %s;
%s

  if (progress < 1) {
    animationFrame = requestAnimationFrame(animate);
  } else if (loop) {
    startTime = null;
    animationFrame = requestAnimationFrame(animate);
  }
}

animationFrame = requestAnimationFrame(animate);

// cancelAnimationFrame(animationFrame);
`, objectID, p.str("color", "#ff0000"), p.num("duration", 1000), p.boolean("loop", false),
		easingExpr(p.str("easing", "easeInOut")), body)
}

// EventListener renders a listener for eventName on every object.
func EventListener(sceneID, eventName string) string {
	return withRuntime(sceneID, fmt.Sprintf(`
spline.addEventListener('%s', (e) => {
  console.log('Event triggered:', e);

  const targetObject = e.target;
  console.log('Target object:', targetObject.name, targetObject.id);

  if (targetObject.name === 'Cube') {
    targetObject.scale.multiplyScalar(1.1);
  } else if (targetObject.name === 'Sphere') {
    targetObject.material.color.set('#ff0000');
  }

  // Events can be re-emitted on other objects
  const otherObject = spline.findObjectByName('OtherObject');
  if (otherObject) {
    otherObject.emitEvent('mouseDown');
  }
});
`, eventName))
}

// Variable renders code that sets, reads and watches a scene variable.
// value is written as a JSON literal.
func Variable(sceneID, name string, value any) (string, error) {
	literal, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("failed to encode variable value: %w", err)
	}
	quoted := strings.ReplaceAll(name, "'", `\'`)

	return withRuntime(sceneID, fmt.Sprintf(`
// Set variable value
spline.setVariable('%[1]s', %[2]s);

// Get variable value
const currentValue = spline.getVariable('%[1]s');
console.log('Current value:', currentValue);

// Listen for variable changes
spline.addEventListener('variableChanged', (e) => {
  if (e.variableName === '%[1]s') {
    console.log('Variable changed:', e.variableName, e.value);
  }
});
`, quoted, literal)), nil
}
