package math

// Transform is an object's placement in the world: translation, Euler
// rotation in degrees, and per-axis scale.
type Transform struct {
	Position Vec3
	Rotation Vec3
	Scale    Vec3
}

// IdentityTransform returns a transform that leaves points unchanged.
func IdentityTransform() Transform {
	return Transform{Scale: One}
}

// Matrix returns the local-to-world matrix (T * R * S).
func (t Transform) Matrix() Mat4 {
	s := t.Scale
	if s == Zero {
		s = One
	}
	return Translate(t.Position.X, t.Position.Y, t.Position.Z).
		Mul(QuatFromEuler(t.Rotation).ToMat4()).
		Mul(Scale(s.X, s.Y, s.Z))
}

// Apply transforms p from local to world space.
func (t Transform) Apply(p Vec3) Vec3 {
	return t.Matrix().TransformPoint(p)
}
