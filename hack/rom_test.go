// This file is part of hackvm - https://github.com/db47h/hackvm
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hack_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/db47h/hackvm/hack"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ROM files", func() {
	dEqA := uint16(hack.CInst | 0x0C10)
	rom := []hack.Cell{7, hack.Cell(dEqA), -1}

	It("should write 16 binary digits per instruction", func() {
		var b bytes.Buffer
		Expect(hack.WriteROM(&b, rom)).To(Succeed())
		Expect(b.String()).To(Equal(
			"0000000000000111\n" +
				"1110110000010000\n" +
				"1111111111111111\n"))
	})

	It("should read back what it writes", func() {
		var b bytes.Buffer
		Expect(hack.WriteROM(&b, rom)).To(Succeed())
		got, err := hack.ReadROM(&b)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(rom))
	})

	It("should skip blank lines", func() {
		got, err := hack.ReadROM(strings.NewReader("\n0000000000000001\n  \n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal([]hack.Cell{1}))
	})

	DescribeTable("malformed input",
		func(src, msg string) {
			_, err := hack.ReadROM(strings.NewReader(src))
			Expect(err).To(MatchError(ContainSubstring(msg)))
		},
		Entry("short line", "0101", "line 1: expected 16 binary digits"),
		Entry("bad digit", "0000000000000001\n0000000000000002", "line 2"),
	)

	It("should save and load files", func() {
		dir, err := os.MkdirTemp("", "hack")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, dir)
		name := filepath.Join(dir, "Prog.hack")
		Expect(hack.Save(name, rom)).To(Succeed())
		got, err := hack.Load(name)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(rom))
	})

	It("should fail loading missing files", func() {
		_, err := hack.Load(filepath.Join(os.TempDir(), "no", "such", "file.hack"))
		Expect(err).To(MatchError(ContainSubstring("open failed")))
	})
})
