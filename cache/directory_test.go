package cache_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/csim/cache"
)

var _ = Describe("Directory", func() {
	var d *cache.DirectoryImpl

	BeforeEach(func() {
		d = cache.MakeBuilder().
			WithSetIndexBits(2).
			WithBlockOffsetBits(4).
			WithWayAssociativity(2).
			MustBuild()
	})

	It("should start with every block invalid", func() {
		sets := d.GetSets()

		Expect(sets).To(HaveLen(4))
		for setID, set := range sets {
			Expect(set.Blocks).To(HaveLen(2))
			Expect(set.Recency.Front()).To(Equal(0))
			for wayID, block := range set.Blocks {
				Expect(block.IsValid).To(BeFalse())
				Expect(block.SetID).To(Equal(setID))
				Expect(block.WayID).To(Equal(wayID))
			}
		}
	})

	It("should report the directory shape", func() {
		Expect(d.WayAssociativity()).To(Equal(2))
		Expect(d.TotalSize()).To(Equal(uint64(4 * 2 * 16)))
	})

	It("should miss on a cold directory", func() {
		Expect(d.Lookup(0x40)).To(BeNil())
	})

	It("should find a block written earlier", func() {
		victim := d.FindVictim(0x40)
		victim.Tag = d.Decode(0x40).Tag
		victim.IsValid = true

		block := d.Lookup(0x40)

		Expect(block).NotTo(BeNil())
		Expect(block).To(BeIdenticalTo(victim))
	})

	It("should not match a block from another set", func() {
		victim := d.FindVictim(0x40)
		victim.Tag = d.Decode(0x40).Tag
		victim.IsValid = true

		// 0x50 carries the same tag but maps to the next set.
		Expect(d.Decode(0x50).Tag).To(Equal(d.Decode(0x40).Tag))
		Expect(d.Lookup(0x50)).To(BeNil())
	})

	It("should fill the ways of a set in ascending order", func() {
		first := d.FindVictim(0x00)
		first.Tag = d.Decode(0x00).Tag
		first.IsValid = true

		second := d.FindVictim(0x100)
		second.Tag = d.Decode(0x100).Tag
		second.IsValid = true

		Expect(first.WayID).To(Equal(0))
		Expect(second.WayID).To(Equal(1))
	})

	It("should evict the least recently visited block", func() {
		a := d.FindVictim(0x00)
		a.Tag = d.Decode(0x00).Tag
		a.IsValid = true

		b := d.FindVictim(0x100)
		b.Tag = d.Decode(0x100).Tag
		b.IsValid = true

		// Re-visit A so that B becomes the oldest.
		d.Visit(a)

		victim := d.FindVictim(0x200)

		Expect(victim).To(BeIdenticalTo(b))
		Expect(victim.IsValid).To(BeTrue())
	})

	It("should prefer an invalid way over evicting a valid one", func() {
		a := d.FindVictim(0x00)
		a.Tag = d.Decode(0x00).Tag
		a.IsValid = true

		// Way 1 is still empty; visiting A must not push way 1 behind it.
		d.Visit(a)
		d.Visit(a)

		victim := d.FindVictim(0x100)

		Expect(victim.WayID).To(Equal(1))
		Expect(victim.IsValid).To(BeFalse())
	})

	It("should never hold more valid tags than ways", func() {
		addrs := []uint64{0x00, 0x100, 0x200, 0x300, 0x400}
		for _, addr := range addrs {
			victim := d.FindVictim(addr)
			victim.Tag = d.Decode(addr).Tag
			victim.IsValid = true
		}

		validCount := 0
		for _, block := range d.GetSets()[0].Blocks {
			if block.IsValid {
				validCount++
			}
		}

		Expect(validCount).To(Equal(2))
	})

	It("should forget everything on reset", func() {
		victim := d.FindVictim(0x40)
		victim.Tag = d.Decode(0x40).Tag
		victim.IsValid = true

		d.Reset()

		Expect(d.Lookup(0x40)).To(BeNil())
		for _, set := range d.GetSets() {
			Expect(set.Recency.Order()).To(Equal([]int{0, 1}))
		}
	})
})

var _ = Describe("Builder", func() {
	It("should build a directory with the requested geometry", func() {
		d, err := cache.MakeBuilder().
			WithSetIndexBits(1).
			WithBlockOffsetBits(1).
			WithWayAssociativity(1).
			Build()

		Expect(err).NotTo(HaveOccurred())
		Expect(d.GetSets()).To(HaveLen(2))
		Expect(d.WayAssociativity()).To(Equal(1))
	})

	It("should refuse a geometry without ways", func() {
		_, err := cache.MakeBuilder().
			WithWayAssociativity(0).
			Build()

		Expect(err).To(HaveOccurred())
	})

	It("should refuse a geometry wider than an address", func() {
		_, err := cache.MakeBuilder().
			WithSetIndexBits(40).
			WithBlockOffsetBits(40).
			Build()

		Expect(err).To(HaveOccurred())
	})

	It("should panic in MustBuild on an invalid geometry", func() {
		Expect(func() {
			cache.MakeBuilder().WithWayAssociativity(-1).MustBuild()
		}).To(Panic())
	})
})
