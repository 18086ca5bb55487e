package codegen

import (
	"fmt"
	"strings"
)

// Scene interaction kinds accepted by SceneInteraction.
var InteractionTypes = []string{"explore", "eventListeners", "variables", "camera", "physics", "custom"}

// SceneInteraction renders a scene-wide interaction recipe. objectName
// defaults to "Cube"; customCode replaces the body for the custom kind.
func SceneInteraction(sceneID, kind, objectName, customCode string) (string, error) {
	if objectName == "" {
		objectName = "Cube"
	}

	var body string
	switch kind {
	case "explore":
		body = exploreBody
	case "eventListeners":
		body = strings.ReplaceAll(eventListenersBody, "{{object}}", objectName)
	case "variables":
		body = strings.ReplaceAll(variablesBody, "{{object}}", objectName)
	case "camera":
		body = cameraBody
	case "physics":
		body = physicsBody
	case "custom":
		body = customCode
		if strings.TrimSpace(body) == "" {
			body = customBody
		}
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedAction, kind)
	}
	return withRuntime(sceneID, body), nil
}

const exploreBody = `
// Scene exploration
const allObjects = spline.getObjects();
console.log('Total objects:', allObjects.length);

function logObjectHierarchy(objects, indent = '') {
  objects.forEach(obj => {
    console.log(indent + obj.name + ' (' + obj.type + ')');
    if (obj.children && obj.children.length > 0) {
      logObjectHierarchy(obj.children, indent + '  ');
    }
  });
}

logObjectHierarchy(allObjects);

const cubes = allObjects.filter(obj => obj.type === 'cube');
const lights = allObjects.filter(obj => obj.type === 'light');
const cameras = allObjects.filter(obj => obj.type === 'camera');

console.log('Cubes:', cubes.length);
console.log('Lights:', lights.length);
console.log('Cameras:', cameras.length);
`

const eventListenersBody = `
spline.addEventListener('mouseDown', (e) => {
  console.log('Mouse down on:', e.target.name);
  if (e.target.material) {
    e.target.userData.originalColor = e.target.material.color.clone();
    e.target.material.color.set('#ff0000');
  }
});

spline.addEventListener('mouseUp', (e) => {
  console.log('Mouse up on:', e.target.name);
  if (e.target.material && e.target.userData.originalColor) {
    e.target.material.color.copy(e.target.userData.originalColor);
  }
});

spline.addEventListener('mouseHover', (e) => {
  document.body.style.cursor = 'pointer';
});

spline.addEventListener('mouseOut', (e) => {
  document.body.style.cursor = 'default';
});

// Move the selected object with the arrow keys
document.addEventListener('keydown', (e) => {
  const selectedObject = spline.findObjectByName('{{object}}');
  if (!selectedObject) return;
  const moveDistance = 0.1;

  switch (e.key) {
    case 'ArrowUp':
      selectedObject.position.z -= moveDistance;
      break;
    case 'ArrowDown':
      selectedObject.position.z += moveDistance;
      break;
    case 'ArrowLeft':
      selectedObject.position.x -= moveDistance;
      break;
    case 'ArrowRight':
      selectedObject.position.x += moveDistance;
      break;
  }
});
`

const variablesBody = `
const variables = spline.getVariables();
console.log('Variables:', variables);

spline.setVariable('counter', 0);
spline.setVariable('isActive', true);
spline.setVariable('userName', 'Visitor');

spline.addEventListener('variableChanged', (e) => {
  console.log('Variable changed:', e.variableName, e.value);

  if (e.variableName === 'counter') {
    const display = document.getElementById('counter-display');
    if (display) display.textContent = e.value;

    const target = spline.findObjectByName('{{object}}');
    if (target) {
      target.rotation.y = e.value * 0.1;
    }
  }
});

setInterval(() => {
  const currentCount = spline.getVariable('counter') || 0;
  spline.setVariable('counter', currentCount + 1);
}, 1000);
`

const cameraBody = `
const cameras = spline.getObjects().filter(obj => obj.type === 'camera');
console.log('Available cameras:', cameras.map(c => c.name));

const cameraControls = document.createElement('div');
cameraControls.style.position = 'absolute';
cameraControls.style.top = '20px';
cameraControls.style.right = '20px';
cameraControls.style.zIndex = '100';
document.body.appendChild(cameraControls);

cameras.forEach(camera => {
  const button = document.createElement('button');
  button.textContent = camera.name;
  button.addEventListener('click', () => spline.setActiveCamera(camera));
  cameraControls.appendChild(button);
});

function animateCameraTo(targetPosition, duration = 1000) {
  const camera = spline.getActiveCamera();
  const startPosition = { ...camera.position };
  let startTime = null;

  function animate(timestamp) {
    if (!startTime) startTime = timestamp;
    const progress = Math.min((timestamp - startTime) / duration, 1);
    const ease = progress < 0.5 ? 2 * progress * progress : 1 - Math.pow(-2 * progress + 2, 2) / 2;

    camera.position.x = startPosition.x + (targetPosition.x - startPosition.x) * ease;
    camera.position.y = startPosition.y + (targetPosition.y - startPosition.y) * ease;
    camera.position.z = startPosition.z + (targetPosition.z - startPosition.z) * ease;

    if (progress < 1) {
      requestAnimationFrame(animate);
    }
  }

  requestAnimationFrame(animate);
}

[
  { name: 'Front', position: { x: 0, y: 0, z: 5 } },
  { name: 'Top', position: { x: 0, y: 5, z: 0 } },
  { name: 'Side', position: { x: 5, y: 0, z: 0 } }
].forEach(pos => {
  const button = document.createElement('button');
  button.textContent = pos.name;
  button.addEventListener('click', () => animateCameraTo(pos.position));
  cameraControls.appendChild(button);
});
`

const physicsBody = `
// Requires physics to be enabled in the scene
const physicsObjects = spline.getObjects().filter(obj => obj.physics);
console.log('Physics objects:', physicsObjects.map(obj => obj.name));

function applyForce(objectName, force) {
  const obj = spline.findObjectByName(objectName);
  if (obj && obj.physics) {
    obj.physics.applyForce(force);
  }
}

spline.addEventListener('mouseDown', (e) => {
  if (e.target.physics) {
    applyForce(e.target.name, { x: 0, y: 10, z: 0 });
  }
});

const physicsControls = document.createElement('div');
physicsControls.style.position = 'absolute';
physicsControls.style.bottom = '20px';
physicsControls.style.left = '20px';
physicsControls.style.zIndex = '100';
document.body.appendChild(physicsControls);

const resetButton = document.createElement('button');
resetButton.textContent = 'Reset Physics';
resetButton.addEventListener('click', () => {
  physicsObjects.forEach(obj => obj.physics.reset());
});
physicsControls.appendChild(resetButton);

const gravitySlider = document.createElement('input');
gravitySlider.type = 'range';
gravitySlider.min = '0';
gravitySlider.max = '20';
gravitySlider.value = '9.8';
gravitySlider.addEventListener('input', (e) => {
  const gravity = parseFloat(e.target.value);
  spline.setPhysicsGravity({ x: 0, y: -gravity, z: 0 });
});
physicsControls.appendChild(gravitySlider);
`

const customBody = `
// Custom interaction: wave every mesh
let time = 0;

function animate() {
  time += 0.01;
  spline.getObjects().forEach(obj => {
    if (obj.type === 'mesh') {
      obj.position.y = Math.sin(time + obj.position.x) * 0.2;
    }
  });
  requestAnimationFrame(animate);
}

animate();
`

// ComprehensiveExample renders a full walkthrough of the runtime API.
func ComprehensiveExample(sceneID string) string {
	url := SceneURL(sceneID)
	return fmt.Sprintf(`
import { Application } from '@splinetool/runtime';

const canvas = document.getElementById('canvas3d');
const spline = new Application(canvas);

const interactiveObjects = {};

spline.load('%[1]s').then(() => {
  console.log('Scene loaded successfully');

  // 1. Scene exploration
  const allObjects = spline.getObjects();
  console.log('All objects:', allObjects.length);

  // 2. Find specific objects
  const cube = spline.findObjectByName('Cube');
  const sphere = spline.findObjectByName('Sphere');
  if (cube) interactiveObjects.cube = cube;
  if (sphere) interactiveObjects.sphere = sphere;

  // 3. Event listeners
  spline.addEventListener('mouseDown', handleMouseDown);
  spline.addEventListener('mouseUp', handleMouseUp);
  spline.addEventListener('mouseHover', handleMouseHover);
  spline.addEventListener('mouseOut', handleMouseOut);

  // 4. Variables
  setUpVariables();

  // 5. UI controls
  setUpControls();
});

function handleMouseDown(e) {
  e.target.scale.multiplyScalar(1.1);
  addClickEffect(e.target);
}

function handleMouseUp(e) {
  e.target.scale.divideScalar(1.1);
}

function handleMouseHover(e) {
  const target = e.target;
  if (target.material) {
    target.userData.originalColor = target.material.color.clone();
    target.material.color.set('#ffcc00');
  }
}

function handleMouseOut(e) {
  const target = e.target;
  if (target.material && target.userData.originalColor) {
    target.material.color.copy(target.userData.originalColor);
  }
}

function addClickEffect(object) {
  let startTime = null;
  const duration = 300;

  function animate(timestamp) {
    if (!startTime) startTime = timestamp;
    const progress = Math.min((timestamp - startTime) / duration, 1);
    object.scale.setScalar(1 + 0.2 * Math.sin(progress * Math.PI));
    if (progress < 1) {
      requestAnimationFrame(animate);
    } else {
      object.scale.setScalar(1);
    }
  }

  requestAnimationFrame(animate);
}

function setUpVariables() {
  console.log('Variables:', spline.getVariables());
  spline.setVariable('counter', 0);

  setInterval(() => {
    const currentCount = spline.getVariable('counter') || 0;
    spline.setVariable('counter', currentCount + 1);
  }, 1000);

  spline.addEventListener('variableChanged', (e) => {
    if (e.variableName === 'counter' && interactiveObjects.cube) {
      interactiveObjects.cube.rotation.y = e.value * 0.1;
    }
  });
}

function setUpControls() {
  const controlsDiv = document.createElement('div');
  controlsDiv.style.position = 'absolute';
  controlsDiv.style.bottom = '20px';
  controlsDiv.style.left = '20px';
  controlsDiv.style.zIndex = '100';
  document.body.appendChild(controlsDiv);

  const rotateBtn = document.createElement('button');
  rotateBtn.textContent = 'Rotate Objects';
  rotateBtn.addEventListener('click', () => {
    Object.values(interactiveObjects).forEach(animateRotation);
  });
  controlsDiv.appendChild(rotateBtn);

  const resetBtn = document.createElement('button');
  resetBtn.textContent = 'Reset Scene';
  resetBtn.style.marginLeft = '10px';
  resetBtn.addEventListener('click', () => spline.load('%[1]s'));
  controlsDiv.appendChild(resetBtn);
}

function animateRotation(object) {
  let startTime = null;
  const duration = 1000;
  const startY = object.rotation.y;

  function animate(timestamp) {
    if (!startTime) startTime = timestamp;
    const progress = Math.min((timestamp - startTime) / duration, 1);
    const ease = progress < 0.5 ? 2 * progress * progress : 1 - Math.pow(-2 * progress + 2, 2) / 2;
    object.rotation.y = startY + Math.PI * 2 * ease;
    if (progress < 1) {
      requestAnimationFrame(animate);
    }
  }

  requestAnimationFrame(animate);
}
`, url)
}
