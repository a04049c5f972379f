// Package prop describes video stream properties and the constraints used to
// pick one of the properties a driver offers.
package prop

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/camframe/yuvrgba/pkg/frame"
)

// Video represents a video's properties
type Video struct {
	Width, Height int
	FrameRate     float32
	FrameFormat   frame.Format
}

// Merge merges all the field values from o to p, except zero values.
func (p *Video) Merge(o Video) {
	rp := reflect.ValueOf(p).Elem()
	ro := reflect.ValueOf(o)

	for i := 0; i < rp.NumField(); i++ {
		field := ro.Field(i)
		if field.IsZero() {
			continue
		}
		rp.Field(i).Set(field)
	}
}

func (p Video) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%dx%d", p.Width, p.Height)
	if p.FrameRate != 0 {
		fmt.Fprintf(&b, "@%.2f", p.FrameRate)
	}
	if p.FrameFormat != "" {
		fmt.Fprintf(&b, " %s", p.FrameFormat)
	}
	return b.String()
}

// VideoConstraints describes the properties a caller asks a driver for.
// Nil constraints accept any value.
type VideoConstraints struct {
	Width, Height IntConstraint
	FrameRate     FloatConstraint
	FrameFormat   FrameFormatConstraint
}

// FitnessDistance returns the sum of the distances between the constraints
// and p, and whether p satisfies every constraint. Lower is closer.
func (c *VideoConstraints) FitnessDistance(p Video) (float64, bool) {
	var dist float64
	ok := true

	add := func(d float64, fit bool) {
		dist += d
		ok = ok && fit
	}

	if c.Width != nil {
		add(c.Width.Compare(p.Width))
	}
	if c.Height != nil {
		add(c.Height.Compare(p.Height))
	}
	if c.FrameRate != nil {
		add(c.FrameRate.Compare(p.FrameRate))
	}
	if c.FrameFormat != nil {
		add(c.FrameFormat.Compare(p.FrameFormat))
	}

	return dist, ok
}

// Select returns the property in props closest to the constraints. ok is
// false when none of them satisfies every constraint.
func (c *VideoConstraints) Select(props []Video) (best Video, ok bool) {
	bestDist := -1.0
	for _, p := range props {
		dist, fit := c.FitnessDistance(p)
		if !fit {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = p, dist
		}
	}
	return best, bestDist >= 0
}
