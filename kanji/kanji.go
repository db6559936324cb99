package kanji

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// Kanjidic2Kanji is a single <character> entry of Kanjidic2.
type Kanjidic2Kanji struct {
	Literal        string `xml:"literal"`
	ReadingMeaning struct {
		RMGroup []struct {
			Reading []struct {
				Value string `xml:",chardata"`
				Type  string `xml:"r_type,attr"`
			} `xml:"reading"`
		} `xml:"rmgroup"`
	} `xml:"reading_meaning"`
}

// Table maps kanji to their on and kun readings. It is immutable once
// loaded.
type Table struct {
	readings map[rune][]string
}

// LoadFile reads a Kanjidic2 XML file.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open kanjidic2: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load streams Kanjidic2 XML and keeps the ja_on and ja_kun readings of every
// single-character literal.
func Load(r io.Reader) (*Table, error) {
	t := &Table{readings: make(map[rune][]string)}

	// find <character> elements directly, skipping any wrapper
	d := xml.NewDecoder(r)
	d.Strict = false
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse kanjidic2: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "character" {
			continue
		}
		var k Kanjidic2Kanji
		if err := d.DecodeElement(&k, &se); err != nil {
			return nil, fmt.Errorf("decode character: %w", err)
		}
		if utf8.RuneCountInString(k.Literal) != 1 {
			continue
		}
		var readings []string
		for _, group := range k.ReadingMeaning.RMGroup {
			for _, rd := range group.Reading {
				if rd.Type == "ja_on" || rd.Type == "ja_kun" {
					readings = append(readings, rd.Value)
				}
			}
		}
		kr, _ := utf8.DecodeRuneInString(k.Literal)
		t.readings[kr] = readings
	}
	return t, nil
}

// Readings returns the raw Kanjidic2 readings for r.
func (t *Table) Readings(r rune) []string {
	if t == nil {
		return nil
	}
	return t.readings[r]
}

// Len returns the number of kanji entries loaded.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.readings)
}
