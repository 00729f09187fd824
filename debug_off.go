// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !orderedmapdebug

package orderedmap

const debug = false
