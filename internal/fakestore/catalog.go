package fakestore

import (
	"fmt"
	"strconv"
	"strings"
)

// Product is an item the store sells. Prices are in US dollars.
type Product struct {
	ID           int
	Slug         string
	Name         string
	Category     string
	Manufacturer string
	Price        float64
	Description  string
}

type option struct {
	ID       string
	Name     string
	Selected bool
}

type currency struct {
	ID     string
	Code   string
	Name   string
	Symbol string
	Rate   float64
}

// Currency IDs
const (
	USD = "1"
	EUR = "2"
)

var currencies = []currency{
	{ID: USD, Code: "USD", Name: "US Dollar", Symbol: "$", Rate: 1},
	{ID: EUR, Code: "EUR", Name: "Euro", Symbol: "€", Rate: 0.86},
}

// categoryParents lets a search in a parent category match its children
var categoryParents = map[string]string{
	"2": "1",
	"3": "1",
}

// MenuEntry is one top menu link and the categories its page lists
type MenuEntry struct {
	Slug       string
	Name       string
	Categories []string
}

// TopMenu is the header category navigation
var TopMenu = []MenuEntry{
	{Slug: "computers", Name: "Computers", Categories: []string{"1"}},
	{Slug: "electronics", Name: "Electronics", Categories: []string{"4", "5"}},
	{Slug: "apparel", Name: "Apparel"},
}

var categories = []option{
	{ID: "0", Name: "All"},
	{ID: "1", Name: "Computers"},
	{ID: "2", Name: "Computers >> Desktops"},
	{ID: "3", Name: "Computers >> Notebooks"},
	{ID: "4", Name: "Electronics >> Cell phones"},
	{ID: "5", Name: "Electronics >> Camera & photo"},
}

var manufacturers = []option{
	{ID: "0", Name: "All"},
	{ID: "1", Name: "Apple"},
	{ID: "2", Name: "HP"},
	{ID: "3", Name: "HTC"},
	{ID: "4", Name: "Asus"},
	{ID: "5", Name: "Nokia"},
}

var countries = []option{
	{ID: "0", Name: "Select country"},
	{ID: "1", Name: "United States"},
	{ID: "2", Name: "Canada"},
	{ID: "3", Name: "Netherlands"},
}

var states = []option{
	{ID: "0", Name: "Other"},
	{ID: "40", Name: "New York"},
	{ID: "41", Name: "California"},
}

// DefaultProducts is the catalog a new store starts with
func DefaultProducts() []Product {
	return []Product{
		{ID: 1, Slug: "apple-macbook-pro-13-inch", Name: "Apple MacBook Pro 13-inch", Category: "3", Manufacturer: "1", Price: 1800,
			Description: "A touch of genius. The thinnest and lightest laptop computer Apple has built."},
		{ID: 2, Slug: "asus-n551jk-xo076h-laptop", Name: "Asus N551JK-XO076H Laptop", Category: "3", Manufacturer: "4", Price: 1500,
			Description: "Powerful notebook with a full HD display."},
		{ID: 3, Slug: "build-your-own-computer", Name: "Build your own computer", Category: "2", Price: 1200,
			Description: "Pick the processor, memory and storage you need."},
		{ID: 4, Slug: "digital-storm-vanquish-3-custom-performance-pc", Name: "Digital Storm VANQUISH 3 Custom Performance PC", Category: "2", Manufacturer: "2", Price: 1259,
			Description: "A gaming computer that is ready for anything."},
		{ID: 5, Slug: "htc-one-m8-android-l-50-lollipop", Name: "HTC One M8 Android L 5.0 Lollipop", Category: "4", Manufacturer: "3", Price: 245,
			Description: "The HTC One M8 phone with a metal unibody."},
		{ID: 6, Slug: "nokia-lumia-1020", Name: "Nokia Lumia 1020", Category: "4", Manufacturer: "5", Price: 349,
			Description: "A smartphone built around a 41 megapixel camera."},
		{ID: 7, Slug: "apple-iphone-16-128gb", Name: "Apple iPhone 16 128GB", Category: "4", Manufacturer: "1", Price: 799,
			Description: "The latest iPhone."},
		{ID: 8, Slug: "nikon-d5500-dslr", Name: "Nikon D5500 DSLR", Category: "5", Price: 670,
			Description: "Compact digital SLR camera with a touch screen."},
	}
}

func findCurrency(id string) currency {
	for _, c := range currencies {
		if c.ID == id {
			return c
		}
	}
	return currencies[0]
}

// formatMoney renders amount converted to c, e.g. $1,800.00
func formatMoney(amount float64, c currency) string {
	cents := int64(amount*c.Rate*100 + 0.5)
	whole := strconv.FormatInt(cents/100, 10)

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return fmt.Sprintf("%s%s.%02d", c.Symbol, b.String(), cents%100)
}

func inCategory(p Product, cid string) bool {
	if cid == "" || cid == "0" {
		return true
	}
	return p.Category == cid || categoryParents[p.Category] == cid
}

// SearchFilter mirrors the advanced search form
type SearchFilter struct {
	Term         string
	Category     string
	Manufacturer string
	PriceFrom    string
	PriceTo      string
	Descriptions bool
}

// MinTermLength is the shortest term the store searches for
const MinTermLength = 3

func search(products []Product, f SearchFilter) []Product {
	term := strings.ToLower(strings.TrimSpace(f.Term))
	from, fromErr := strconv.ParseFloat(f.PriceFrom, 64)
	to, toErr := strconv.ParseFloat(f.PriceTo, 64)

	var out []Product
	for _, p := range products {
		text := strings.ToLower(p.Name)
		if f.Descriptions {
			text += " " + strings.ToLower(p.Description)
		}
		if !strings.Contains(text, term) {
			continue
		}
		if !inCategory(p, f.Category) {
			continue
		}
		if f.Manufacturer != "" && f.Manufacturer != "0" && p.Manufacturer != f.Manufacturer {
			continue
		}
		if fromErr == nil && p.Price < from {
			continue
		}
		if toErr == nil && p.Price > to {
			continue
		}
		out = append(out, p)
	}
	return out
}

func markSelected(opts []option, id string) []option {
	out := make([]option, len(opts))
	for i, o := range opts {
		o.Selected = o.ID == id
		out[i] = o
	}
	return out
}
