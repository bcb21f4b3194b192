// Copyright 2016 The Hammurabi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diag

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_fingerprint_deterministic(tst *testing.T) {
	chk.PrintTitle("fingerprint is deterministic and sensitive to payload")
	a := []float64{1, 2, 3, 4}
	b := []float64{1, 2, 3, 4}
	c := []float64{1, 2, 3, 5}
	if Fingerprint(a) != Fingerprint(b) {
		tst.Fatalf("identical payloads must fingerprint identically")
	}
	if Fingerprint(a) == Fingerprint(c) {
		tst.Fatalf("different payloads must fingerprint differently")
	}
}
