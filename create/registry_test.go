// Copyright (c) 2026, the Panda Stack contributors
//
// SPDX-License-Identifier: Apache-2.0

package create

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Registry", func() {
	var reg Registry

	BeforeEach(func() {
		reg = Registry{
			{Name: "mern", Color: "magenta"},
			{Name: "mevn", Color: "green", Template: "vue", Variants: []Variant{
				{Name: "mevn-js", Color: "yellow"},
				{Name: "mevn-ts", Color: "blue", Template: "vue-ts"},
			}},
		}
	})

	Describe("DefaultRegistry", func() {
		It("Should be valid and offer mern", func() {
			Expect(DefaultRegistry().Validate()).To(Succeed())
			Expect(DefaultRegistry().Names()).To(Equal([]string{"mern"}))
		})
	})

	Describe("Validate", func() {
		It("Should accept valid registries", func() {
			Expect(reg.Validate()).To(Succeed())
		})

		It("Should detect problems", func() {
			Expect(Registry{}.Validate()).To(MatchError("no frameworks registered"))
			Expect(Registry{{Name: ""}}.Validate()).To(MatchError("frameworks and variants require a name"))
			Expect(Registry{{Name: "a", Variants: []Variant{{Name: "a"}}}}.Validate()).To(MatchError("duplicate template name a"))
			Expect(Registry{{Name: "a", Color: "puce"}}.Validate()).To(MatchError("a has unknown color puce"))
		})
	})

	Describe("Names", func() {
		It("Should list variants in place of their framework", func() {
			Expect(reg.Names()).To(Equal([]string{"mern", "mevn-js", "mevn-ts"}))
		})
	})

	Describe("Framework", func() {
		It("Should find frameworks by name", func() {
			f, ok := reg.Framework("mevn")
			Expect(ok).To(BeTrue())
			Expect(f.HasVariants()).To(BeTrue())

			_, ok = reg.Framework("mevn-ts")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("TemplateDir", func() {
		It("Should resolve frameworks and variants", func() {
			dir, ok := reg.TemplateDir("mern")
			Expect(ok).To(BeTrue())
			Expect(dir).To(Equal("mern"))

			dir, ok = reg.TemplateDir("mevn-js")
			Expect(ok).To(BeTrue())
			Expect(dir).To(Equal("mevn-js"))

			dir, ok = reg.TemplateDir("mevn-ts")
			Expect(ok).To(BeTrue())
			Expect(dir).To(Equal("vue-ts"))
		})

		It("Should not resolve frameworks that require a variant", func() {
			_, ok := reg.TemplateDir("mevn")
			Expect(ok).To(BeFalse())

			_, ok = reg.TemplateDir("")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("Title", func() {
		It("Should include the name", func() {
			Expect(reg[0].Title()).To(ContainSubstring("mern"))
			Expect(reg[1].Variants[0].Title()).To(ContainSubstring("mevn-js"))
			Expect(Framework{Name: "plain"}.Title()).To(Equal("plain"))
		})
	})
})
