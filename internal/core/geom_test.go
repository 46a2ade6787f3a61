package core

import "testing"

func TestPointRotate90(t *testing.T) {
	tests := []struct {
		in       Point
		expected Point
	}{
		{Pt(0, 0), Pt(0, 0)},
		{Pt(1, 0), Pt(0, 1)},
		{Pt(0, 1), Pt(-1, 0)},
		{Pt(-1, 0), Pt(0, -1)},
		{Pt(0, -2), Pt(2, 0)},
		{Pt(1, -1), Pt(1, 1)},
	}

	for _, tc := range tests {
		if got := tc.in.Rotate90(); got != tc.expected {
			t.Errorf("%v.Rotate90() = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}

func TestPointRotateFullTurn(t *testing.T) {
	p := Pt(3, -2)
	q := p
	for i := 0; i < 4; i++ {
		q = q.Rotate90()
	}
	if q != p {
		t.Errorf("four quarter turns = %v, expected %v", q, p)
	}
}

func TestPointAddSub(t *testing.T) {
	a, b := Pt(4, 0), Pt(-1, 2)
	if got := a.Add(b); got != Pt(3, 2) {
		t.Errorf("Add() = %v, expected (3, 2)", got)
	}
	if got := a.Add(b).Sub(a); got != b {
		t.Errorf("Sub() = %v, expected %v", got, b)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{3, 1, 5, 3},
		{0, 1, 5, 1},
		{9, 1, 5, 5},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestColorRGB(t *testing.T) {
	if got := ColorOrange.RGB().Hex(); got != "#ffa500" {
		t.Errorf("ColorOrange hex = %s, expected #ffa500", got)
	}
	if got := Color(200).RGB(); got != ColorGray.RGB() {
		t.Errorf("unknown colour = %v, expected gray", got)
	}
}

func TestResolveSeed(t *testing.T) {
	if got := ResolveSeed(42); got != 42 {
		t.Errorf("ResolveSeed(42) = %d, expected 42", got)
	}
	if got := ResolveSeed(0); got <= 0 {
		t.Errorf("ResolveSeed(0) = %d, expected a positive seed", got)
	}
}

func TestMultiInputFrame(t *testing.T) {
	m := NewMultiInputFrame()
	m.Set(Player2, ActionRotate)

	if !m.Player(Player2).Has(ActionRotate) {
		t.Error("Player2 should have ActionRotate")
	}
	if !m.Player(Player1).Empty() {
		t.Error("Player1 should have no actions")
	}

	m.Clear()
	if !m.Player(Player2).Empty() {
		t.Error("Clear() should reset every player")
	}
}
