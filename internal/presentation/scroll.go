// Package presentation scroll offsetini kartochkalar uchun scale/opacity ga aylantiradi.
// Katalog mazmunidan bexabar: faqat indeks va offset.
package presentation

import (
	"errors"
	"fmt"
	"math"
)

// DefaultItemHeight kartochka balandligi (piksel yoki qator birligida)
const DefaultItemHeight = 120

// Curve bo'lakli-chiziqli moslash. Chegaradan tashqarida qiymat qotadi.
type Curve struct {
	Breakpoints []float64
	Values      []float64
}

// NewCurve nuqtalarni tekshirib egri chiziq yaratish
func NewCurve(breakpoints, values []float64) (Curve, error) {
	if len(breakpoints) < 2 {
		return Curve{}, errors.New("curve needs at least two breakpoints")
	}
	if len(breakpoints) != len(values) {
		return Curve{}, fmt.Errorf("curve has %d breakpoints but %d values", len(breakpoints), len(values))
	}
	for i := 1; i < len(breakpoints); i++ {
		if breakpoints[i] < breakpoints[i-1] {
			return Curve{}, fmt.Errorf("breakpoint %d (%v) is below breakpoint %d (%v)", i, breakpoints[i], i-1, breakpoints[i-1])
		}
	}
	return Curve{Breakpoints: breakpoints, Values: values}, nil
}

// Eval x nuqtadagi qiymat. Ekstrapolyatsiya yo'q.
func (c Curve) Eval(x float64) float64 {
	last := len(c.Breakpoints) - 1
	// NaN birinchi qiymatga teng
	if math.IsNaN(x) || x <= c.Breakpoints[0] {
		return c.Values[0]
	}
	if x >= c.Breakpoints[last] {
		return c.Values[last]
	}

	for i := 1; i <= last; i++ {
		lo, hi := c.Breakpoints[i-1], c.Breakpoints[i]
		if x > hi {
			continue
		}
		// nol kenglikdagi bo'lak: o'ng qiymat
		if hi == lo {
			return c.Values[i]
		}
		t := (x - lo) / (hi - lo)
		return c.Values[i-1] + t*(c.Values[i]-c.Values[i-1])
	}
	return c.Values[last]
}

// ItemTransform bitta kartochka uchun vizual parametrlar
type ItemTransform struct {
	Index   int     `json:"index"`
	Scale   float64 `json:"scale"`
	Opacity float64 `json:"opacity"`
}

// Driver joriy scroll offsetini saqlaydi
type Driver struct {
	itemHeight float64
	offset     float64
}

// NewDriver itemHeight <= 0 bo'lsa DefaultItemHeight
func NewDriver(itemHeight float64) *Driver {
	if itemHeight <= 0 {
		itemHeight = DefaultItemHeight
	}
	return &Driver{itemHeight: itemHeight}
}

// Scroll har bir scroll hodisasida offsetni yangilash
func (d *Driver) Scroll(offset float64) {
	d.offset = offset
}

// Offset joriy offset
func (d *Driver) Offset() float64 {
	return d.offset
}

// ItemHeight kartochka balandligi
func (d *Driver) ItemHeight() float64 {
	return d.itemHeight
}

// Transform joriy offset uchun index-kartochka parametrlari
func (d *Driver) Transform(index int) ItemTransform {
	return TransformAt(d.offset, index, d.itemHeight)
}

// Transforms ko'rsatilayotgan ro'yxatning birinchi count ta kartochkasi
func (d *Driver) Transforms(count int) []ItemTransform {
	if count < 0 {
		count = 0
	}
	out := make([]ItemTransform, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, d.Transform(i))
	}
	return out
}

// TransformAt sof funksiya: (offset, index) -> parametrlar
func TransformAt(offset float64, index int, itemHeight float64) ItemTransform {
	top := itemHeight * float64(index)
	return ItemTransform{
		Index:   index,
		Scale:   scaleCurve(top, itemHeight).Eval(offset),
		Opacity: opacityCurve(top, itemHeight).Eval(offset),
	}
}

// Kartochka tepaga chiqib ketayotganda ikki balandlik davomida kichrayadi
func scaleCurve(top, h float64) Curve {
	return Curve{
		Breakpoints: []float64{-1, 0, top, top + 2*h},
		Values:      []float64{1, 1, 1, 0},
	}
}

// Yarim balandlikda butunlay so'nadi
func opacityCurve(top, h float64) Curve {
	return Curve{
		Breakpoints: []float64{-1, 0, top, top + 0.5*h},
		Values:      []float64{1, 1, 1, 0},
	}
}
