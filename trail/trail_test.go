// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trail

import (
	"errors"
	"testing"

	"cogentcore.org/core/math32"
	"cogentcore.org/orrery/scene"
	"github.com/stretchr/testify/assert"
)

func TestCapacity(t *testing.T) {
	tr := New("earth", 0)
	assert.Equal(t, DefaultCapacity, tr.Cap())

	const extra = 57
	for i := 0; i < DefaultCapacity+extra; i++ {
		tr.Add(math32.Vec3(float32(i), 0, 0))
		assert.LessOrEqual(t, tr.Len(), DefaultCapacity)
	}
	assert.Equal(t, DefaultCapacity, tr.Len())

	pts := tr.Points()
	assert.Len(t, pts, DefaultCapacity)
	for i, p := range pts {
		assert.Equal(t, float32(extra+i), p.X)
	}
	assert.Equal(t, pts, tr.Polyline())
}

func TestPartial(t *testing.T) {
	tr := New("moon", 4)
	tr.Add(math32.Vec3(1, 0, 0))
	tr.Add(math32.Vec3(2, 0, 0))
	assert.Equal(t, []math32.Vector3{math32.Vec3(1, 0, 0), math32.Vec3(2, 0, 0)}, tr.Polyline())
	assert.Equal(t, 2, tr.Len())
	assert.Equal(t, 4, tr.Cap())
}

type fakePositions map[scene.Handle]math32.Vector3

func (fp fakePositions) WorldPos(h scene.Handle) (math32.Vector3, error) {
	p, ok := fp[h]
	if !ok {
		return math32.Vector3{}, errors.New("not attached")
	}
	return p, nil
}

func TestSetRecordSkips(t *testing.T) {
	ts := NewSet(10)
	ts.Track("a", 1)
	ts.Track("b", 2)
	ts.Track("c", 3)

	src := fakePositions{1: math32.Vec3(1, 2, 3), 3: math32.Vec3(4, 5, 6)}
	rec, skip := ts.Record(src)
	assert.Equal(t, 2, rec)
	assert.Equal(t, 1, skip)
	assert.Equal(t, 1, ts.ByName("a").Len())
	assert.Equal(t, 0, ts.ByName("b").Len())
	assert.Equal(t, 1, ts.ByName("c").Len())
	assert.Nil(t, ts.ByName("d"))
}

func TestSetToggle(t *testing.T) {
	ts := NewSet(0)
	assert.False(t, ts.Enabled)
	assert.True(t, ts.Toggle())
	assert.False(t, ts.Toggle())
	assert.Equal(t, DefaultCapacity, ts.Track("x", 1).Cap())
}
