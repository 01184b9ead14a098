// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bikeshare

import (
	"fmt"
	"testing"
)

func ExampleSeason_Label() {
	for _, s := range Seasons {
		fmt.Println(s.Label())
	}
	// Output:
	// Musim Semi
	// Musim Panas
	// Musim Gugur
	// Musim Dingin
}

func TestMonthString(t *testing.T) {
	for _, test := range []struct {
		m    Month
		want string
	}{
		{1, "Januari"},
		{5, "Mei"},
		{8, "Agustus"},
		{12, "Desember"},
		{0, "Month(0)"},
		{13, "Month(13)"},
	} {
		if got := test.m.String(); got != test.want {
			t.Errorf("Month(%d).String() = %q, want %q", int(test.m), got, test.want)
		}
	}
}

func TestWorkingDayLabel(t *testing.T) {
	if got := WorkingDayLabel(1); got != "Hari Kerja" {
		t.Errorf("WorkingDayLabel(1) = %q", got)
	}
	if got := WorkingDayLabel(0); got != "Non-Hari Kerja" {
		t.Errorf("WorkingDayLabel(0) = %q", got)
	}
}
