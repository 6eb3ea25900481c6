package math

import "fmt"

/**
 * @brief Creates and returns a translation matrix from the given position.
 */
func NewTranslationMatrix(position Vector3) (Matrix4x4, error) {
	if position.size != 3 {
		return Matrix4x4{}, fmt.Errorf("NewTranslationMatrix: size %d: %w", position.size, ErrInvalidDimension)
	}
	out, _ := CreateIdentity[float32](4, 4)
	out.set(0, 3, position.values[0])
	out.set(1, 3, position.values[1])
	out.set(2, 3, position.values[2])
	return out, nil
}

/**
 * @brief Returns a scale matrix using the provided 3-component scale.
 */
func NewScaleMatrix(scale Vector3) (Matrix4x4, error) {
	if scale.size != 3 {
		return Matrix4x4{}, fmt.Errorf("NewScaleMatrix: size %d: %w", scale.size, ErrInvalidDimension)
	}
	out, _ := CreateIdentity[float32](4, 4)
	out.set(0, 0, scale.values[0])
	out.set(1, 1, scale.values[1])
	out.set(2, 2, scale.values[2])
	return out, nil
}

func TransformCreate() *Transform {
	return TransformFromPositionRotationScale(NewVector3(0, 0, 0), NewQuaternionIdentity(), NewVector3(1, 1, 1))
}

func TransformFromPosition(position Vector3) *Transform {
	return TransformFromPositionRotationScale(position, NewQuaternionIdentity(), NewVector3(1, 1, 1))
}

func TransformFromRotation(rotation Quaternion) *Transform {
	return TransformFromPositionRotationScale(NewVector3(0, 0, 0), rotation, NewVector3(1, 1, 1))
}

func TransformFromPositionRotationScale(position Vector3, rotation Quaternion, scale Vector3) *Transform {
	t := &Transform{}
	t.SetPositionRotationScale(position, rotation, scale)
	t.Local, _ = CreateIdentity[float32](4, 4)
	return t
}

func (t *Transform) SetPosition(position Vector3) {
	t.Position = position
	t.IsDirty = true
}

func (t *Transform) Translate(translation Vector3) error {
	p, err := t.Position.Add(translation)
	if err != nil {
		return err
	}
	t.Position = p
	t.IsDirty = true
	return nil
}

func (t *Transform) SetRotation(rotation Quaternion) {
	t.Rotation = rotation
	t.IsDirty = true
}

func (t *Transform) Rotate(rotation Quaternion) {
	t.Rotation = t.Rotation.Mul(rotation)
	t.IsDirty = true
}

func (t *Transform) SetScale(scale Vector3) {
	t.Scale = scale
	t.IsDirty = true
}

func (t *Transform) SetPositionRotationScale(position Vector3, rotation Quaternion, scale Vector3) {
	t.Position = position
	t.Rotation = rotation
	t.Scale = scale
	t.IsDirty = true
}

// GetLocal returns translation * rotation * scale, recomputed only when
// the transform is dirty. A nil transform is the identity.
func (t *Transform) GetLocal() (Matrix4x4, error) {
	if t == nil {
		return CreateIdentity[float32](4, 4)
	}
	if t.IsDirty {
		translation, err := NewTranslationMatrix(t.Position)
		if err != nil {
			return Matrix4x4{}, err
		}
		scale, err := NewScaleMatrix(t.Scale)
		if err != nil {
			return Matrix4x4{}, err
		}
		tr, _ := translation.Mul(t.Rotation.ToMatrix4())
		tr, _ = tr.Mul(scale)
		t.Local = tr
		t.IsDirty = false
	}
	return t.Local, nil
}

// GetWorld returns parent.GetWorld() * GetLocal().
func (t *Transform) GetWorld() (Matrix4x4, error) {
	local, err := t.GetLocal()
	if err != nil || t == nil || t.Parent == nil {
		return local, err
	}
	parent, err := t.Parent.GetWorld()
	if err != nil {
		return Matrix4x4{}, err
	}
	return parent.Mul(local)
}

// TransformPoint maps a 3-vector point through the world matrix.
func (t *Transform) TransformPoint(point Vector3) (Vector3, error) {
	if point.size != 3 {
		return Vector3{}, fmt.Errorf("TransformPoint: size %d: %w", point.size, ErrInvalidDimension)
	}
	world, err := t.GetWorld()
	if err != nil {
		return Vector3{}, err
	}
	h, err := world.MulVector(NewVector4(point.values[0], point.values[1], point.values[2], 1))
	if err != nil {
		return Vector3{}, err
	}
	return NewVector3(h.values[0], h.values[1], h.values[2]), nil
}
