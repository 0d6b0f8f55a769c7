// Copyright (c) 2026, the Panda Stack contributors
//
// SPDX-License-Identifier: Apache-2.0

package create

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Hints", func() {
	commands := func(hints []Hint) []string {
		var res []string
		for _, h := range hints {
			res = append(res, h.Command)
		}
		return res
	}

	Describe("PackageManagerFromUserAgent", func() {
		It("Should parse the leading product", func() {
			pm, ok := PackageManagerFromUserAgent("pnpm/9.1.0 npm/? node/v20.12.2 linux x64")
			Expect(ok).To(BeTrue())
			Expect(pm).To(Equal(PackageManager{Name: "pnpm", Version: "9.1.0"}))

			pm, ok = PackageManagerFromUserAgent("bun")
			Expect(ok).To(BeTrue())
			Expect(pm).To(Equal(PackageManager{Name: "bun"}))
		})

		It("Should reject empty agents", func() {
			_, ok := PackageManagerFromUserAgent("")
			Expect(ok).To(BeFalse())

			_, ok = PackageManagerFromUserAgent("   ")
			Expect(ok).To(BeFalse())

			_, ok = PackageManagerFromUserAgent("/1.0")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("NextSteps", func() {
		It("Should use yarn shorthands", func() {
			Expect(commands(NextSteps("yarn"))).To(Equal([]string{"yarn", "yarn prisma", "yarn dev", "yarn build", "yarn start"}))
		})

		It("Should use run scripts for other managers", func() {
			Expect(commands(NextSteps("pnpm"))).To(Equal([]string{"pnpm install", "pnpm run dev", "pnpm prisma", "pnpm run build", "pnpm start"}))
		})

		It("Should default to npm", func() {
			Expect(NextSteps("")).To(Equal(NextSteps("npm")))
			Expect(commands(NextSteps(""))[0]).To(Equal("npm install"))
		})

		It("Should describe every step", func() {
			for _, h := range NextSteps("npm") {
				Expect(h.Description).ToNot(BeEmpty())
			}
		})
	})
})
