package trailgraph

import (
	"errors"
	"image"
	"math/rand"
	"testing"
)

func flat(x, y int) int {
	return 10
}

func TestPathBuilderFlatStraight(t *testing.T) {
	cases := []struct {
		name     string
		src, dst image.Point
	}{
		{"east", image.Pt(2, 5), image.Pt(7, 5)},
		{"west", image.Pt(12, 5), image.Pt(7, 5)},
		{"south", image.Pt(5, 2), image.Pt(5, 7)},
		{"north", image.Pt(5, 12), image.Pt(5, 7)},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			pb := &PathBuilder{
				Bounds:       image.Rect(0, 0, 20, 20),
				Height:       flat,
				MinElevation: 3,
				RiseLimit:    4,
				Rng:          rand.New(rand.NewSource(1)),
			}

			path, err := pb.Build(tt.src, tt.dst)
			if err != nil {
				t.Fatal(err)
			}
			if pb.Backtracks != 0 {
				t.Errorf("backtracked %d times, want 0", pb.Backtracks)
			}
			if len(path) != 6 {
				t.Fatalf("path %v has %d steps, want 6", path, len(path))
			}

			step := tt.dst.Sub(tt.src).Div(5)
			for i, p := range path {
				want := tt.src.Add(step.Mul(i))
				if p != want {
					t.Errorf("step %d = %v, want %v", i, p, want)
				}
			}
		})
	}
}

func TestPathBuilderNoWay(t *testing.T) {
	src := image.Pt(5, 5)
	pb := &PathBuilder{
		Bounds: image.Rect(0, 0, 20, 20),
		Height: func(x, y int) int {
			if x == src.X && y == src.Y {
				return 10
			}
			return 0 // water all around
		},
		MinElevation: 3,
		RiseLimit:    4,
		Rng:          rand.New(rand.NewSource(1)),
	}

	_, err := pb.Build(src, image.Pt(10, 5))
	if !errors.Is(err, ErrNoWay) {
		t.Errorf("err = %v, want ErrNoWay", err)
	}
	if pb.Backtracks != 1 {
		t.Errorf("backtracks = %d, want 1", pb.Backtracks)
	}
}

func TestPathBuilderStepBudget(t *testing.T) {
	pb := &PathBuilder{
		Bounds:       image.Rect(0, 0, 20, 20),
		Height:       flat,
		MinElevation: 3,
		RiseLimit:    4,
		MaxSteps:     3,
		Rng:          rand.New(rand.NewSource(1)),
	}

	_, err := pb.Build(image.Pt(2, 5), image.Pt(7, 5))
	if !errors.Is(err, ErrStepBudget) {
		t.Errorf("err = %v, want ErrStepBudget", err)
	}
}

func TestPathBuilderJunctionOverCliff(t *testing.T) {
	cliff := func(x, y int) int {
		if x >= 5 {
			return 20
		}
		return 10
	}

	cases := []struct {
		name     string
		junction func(x, y int) bool
		wantErr  error
	}{
		{"no junction", nil, ErrNoWay},
		{"junction", func(x, y int) bool { return x == 5 && y == 5 }, nil},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			pb := &PathBuilder{
				Bounds:       image.Rect(4, 5, 10, 6), // a single row
				Height:       cliff,
				Junction:     tt.junction,
				MinElevation: 3,
				RiseLimit:    4,
				Rng:          rand.New(rand.NewSource(1)),
			}

			path, err := pb.Build(image.Pt(4, 5), image.Pt(8, 5))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if len(path) != 5 || path[1] != image.Pt(5, 5) {
				t.Errorf("path = %v, want straight over the junction", path)
			}
		})
	}
}

func TestPathBuilderAvoidsWater(t *testing.T) {
	// a lake in the way; the trail goes round it
	lake := image.Rect(6, 3, 9, 8)
	pb := &PathBuilder{
		Bounds: image.Rect(0, 0, 20, 20),
		Height: func(x, y int) int {
			if image.Pt(x, y).In(lake) {
				return 0
			}
			return 10
		},
		MinElevation: 3,
		RiseLimit:    4,
		Rng:          rand.New(rand.NewSource(1)),
	}

	src, dst := image.Pt(2, 5), image.Pt(12, 5)
	path, err := pb.Build(src, dst)
	if err != nil {
		t.Fatal(err)
	}
	if path[0] != src || path[len(path)-1] != dst {
		t.Fatalf("path runs %v -> %v, want %v -> %v", path[0], path[len(path)-1], src, dst)
	}

	seen := map[image.Point]bool{}
	for i, p := range path {
		if p.In(lake) {
			t.Errorf("step %d %v is in the lake", i, p)
		}
		if seen[p] {
			t.Errorf("step %d %v visited twice", i, p)
		}
		seen[p] = true
		if i > 0 {
			d := p.Sub(path[i-1])
			if absint(d.X) > 1 || absint(d.Y) > 1 {
				t.Errorf("step %d jumps from %v to %v", i, path[i-1], p)
			}
		}
	}
}
