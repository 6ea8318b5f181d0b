// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/bessel/internal/tensor"
)

// Backend defines the element-wise operations a compute backend provides.
//
// Implementations:
//   - cpu.Backend: pure Go, host memory
//   - autodiff.Backend: records operations for gradients
type Backend = tensor.Backend
