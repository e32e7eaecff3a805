// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package vppreproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitDefine(t *testing.T) {
	name, value := splitDefine("WIDTH=8")
	assert.Equal(t, "WIDTH", name)
	assert.Equal(t, "8", value)
	//
	name, value = splitDefine("DEBUG")
	assert.Equal(t, "DEBUG", name)
	assert.Equal(t, "1", value)
}

func TestDefinesText(t *testing.T) {
	text := definesText(map[string]string{"B": "2", "A": "1"})
	assert.Equal(t, "`define A 1\n`define B 2\n", text)
}
