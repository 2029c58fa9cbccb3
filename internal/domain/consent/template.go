package consent

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownKind = errors.New("unknown template type")

const (
	programLine     = "1. FC Köln — International Talent Program"
	blankParentName = "________________________"
)

type Kind string

const (
	KindVollmacht Kind = "vollmacht"
	KindWellpass  Kind = "wellpass"
)

func ParseKind(value string) (Kind, error) {
	switch k := Kind(strings.TrimSpace(value)); k {
	case KindVollmacht, KindWellpass:
		return k, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownKind, value)
}

type Style int

const (
	StyleBody Style = iota
	StyleTitle
	StyleSubtitle
	StyleHeading
)

type Line struct {
	Text  string
	Style Style
}

type Page struct {
	Lines []Line
}

// Document is a print layout independent of the output format.
type Document struct {
	Kind  Kind
	Title string
	Pages []Page
}

type Subject struct {
	PlayerName  string
	DateOfBirth string
	ParentName  string
}

// Build lays out the consent form: the statement on page one and the
// signature block on page two.
func Build(kind Kind, subject Subject) (Document, error) {
	parent := strings.TrimSpace(subject.ParentName)
	if parent == "" {
		parent = blankParentName
	}

	var (
		title, subtitle string
		body            []string
	)
	switch kind {
	case KindVollmacht:
		title, subtitle = "VOLLMACHT", "Power of Attorney"
		body = vollmachtBody(subject, parent)
	case KindWellpass:
		title, subtitle = "WELLPASS GYM MEMBERSHIP", "Parental Consent for Minor"
		body = wellpassBody(subject, parent)
	default:
		return Document{}, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	first := Page{Lines: []Line{
		{Text: title, Style: StyleTitle},
		{Text: subtitle, Style: StyleSubtitle},
		{Text: programLine, Style: StyleHeading},
	}}
	for _, text := range body {
		first.Lines = append(first.Lines, Line{Text: text})
	}

	second := Page{Lines: []Line{{Text: programLine, Style: StyleHeading}}}
	for _, text := range signatureBlock(subject.PlayerName, parent) {
		second.Lines = append(second.Lines, Line{Text: text})
	}

	return Document{Kind: kind, Title: title, Pages: []Page{first, second}}, nil
}

// FileName is the attachment name offered for download.
func FileName(kind Kind, lastName string) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '"', '\\', '/', '\r', '\n':
			return '_'
		}
		return r
	}, strings.TrimSpace(lastName))
	return fmt.Sprintf("%s_%s.pdf", kind, clean)
}

func guardianIntro(subject Subject, parent string) []string {
	return []string{
		"I, " + parent,
		fmt.Sprintf("(parent/legal guardian of %s, born %s),", subject.PlayerName, subject.DateOfBirth),
		"",
	}
}

func vollmachtBody(subject Subject, parent string) []string {
	return append(guardianIntro(subject, parent),
		"hereby authorize Warubi Sports UG (haftungsbeschränkt),",
		"represented by Max Bisinger, to act on my behalf in the following matters",
		"during my child's participation in the International Talent Program (ITP)",
		"at 1. FC Köln:",
		"",
		"1. Medical decisions in case of emergency",
		"2. Administrative matters related to housing and daily life",
		"3. Travel and transportation within Germany",
		"4. Communication with educational institutions",
		"5. Communication with football training facilities",
		"",
		"This authorization is valid from the date of signing until the end",
		"of the player's participation in the ITP program.",
	)
}

func wellpassBody(subject Subject, parent string) []string {
	return append(guardianIntro(subject, parent),
		"hereby give consent for my child to use gym facilities through the",
		"Wellpass program as part of their training during the International",
		"Talent Program (ITP) at 1. FC Köln.",
		"",
		"I acknowledge that:",
		"",
		"1. My child will use gym equipment under supervision of ITP staff",
		"2. The gym membership is provided through the Wellpass corporate",
		"   fitness program",
		"3. I have been informed about the risks associated with physical",
		"   training and gym usage",
		"4. I will inform the ITP staff of any medical conditions that may",
		"   affect my child's ability to participate in gym activities",
	)
}

func signatureBlock(playerName, parent string) []string {
	return []string{
		"",
		"Date: _______________________",
		"",
		"",
		"Signature of Parent/Guardian: _______________________________",
		"",
		"Name (printed): " + parent,
		"",
		"",
		"Signature of Player: _______________________________",
		"",
		"Name (printed): " + playerName,
	}
}
