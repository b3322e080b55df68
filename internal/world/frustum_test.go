package world

import (
	"spacefolio/internal/components"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestFrustumKeepsPointAhead(t *testing.T) {
	cam := components.NewCamera(75, 16.0/9.0, 0.1, 1000)
	f := ExtractFrustum(cam)

	if !f.ContainsSphere(rl.Vector3{X: 0, Y: 0, Z: -10}, 0) {
		t.Errorf("Expected point ahead of camera to be inside")
	}
}

func TestFrustumCullsBehindAndBeyondFar(t *testing.T) {
	cam := components.NewCamera(75, 16.0/9.0, 0.1, 1000)
	f := ExtractFrustum(cam)

	if f.ContainsSphere(rl.Vector3{X: 0, Y: 0, Z: 10}, 0) {
		t.Errorf("Expected point behind camera to be culled")
	}
	if f.ContainsSphere(rl.Vector3{X: 0, Y: 0, Z: -1500}, 0) {
		t.Errorf("Expected point beyond far plane to be culled")
	}
	if f.ContainsSphere(rl.Vector3{X: 500, Y: 0, Z: -10}, 0) {
		t.Errorf("Expected point far to the side to be culled")
	}
}

func TestFrustumSphereStraddlingPlane(t *testing.T) {
	cam := components.NewCamera(75, 1, 0.1, 1000)
	f := ExtractFrustum(cam)

	// center just behind the camera, radius reaching into view
	if !f.ContainsSphere(rl.Vector3{X: 0, Y: 0, Z: 1}, 3) {
		t.Errorf("Expected sphere intersecting near plane to be kept")
	}
}

func TestFrustumFollowsCameraPosition(t *testing.T) {
	cam := components.NewCamera(75, 1, 0.1, 1000)
	cam.Position.Z = 30
	f := ExtractFrustum(cam)

	if !f.ContainsSphere(rl.Vector3{X: 0, Y: 0, Z: 20}, 0) {
		t.Errorf("Expected point ahead of moved camera to be inside")
	}
	if f.ContainsSphere(rl.Vector3{X: 0, Y: 0, Z: 35}, 0) {
		t.Errorf("Expected point behind moved camera to be culled")
	}
}
