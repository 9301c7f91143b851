package provider

import (
	"context"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/google/generative-ai-go/genai"
	"github.com/pkg/errors"
	"google.golang.org/api/googleapi"
)

type fakeModel struct {
	text    string
	err     error
	prompts []string
}

func (f *fakeModel) GenerateContent(_ context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	for _, p := range parts {
		if text, ok := p.(genai.Text); ok {
			f.prompts = append(f.prompts, string(text))
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(f.text)}},
		}},
	}, nil
}

func newTestGemini(c *qt.C, content, title *fakeModel) *Gemini {
	g, err := newGemini(content, title, nil, nil)
	c.Assert(err, qt.IsNil)
	return g
}

func TestParseLanguage(t *testing.T) {
	c := qt.New(t)
	for in, want := range map[string]Language{"english": LanguageEnglish, " Telugu ": LanguageTelugu, "BOTH": LanguageBoth, "": LanguageBoth} {
		got, err := ParseLanguage(in)
		c.Assert(err, qt.IsNil)
		c.Assert(got, qt.Equals, want)
	}
	_, err := ParseLanguage("hindi")
	c.Assert(errors.Is(err, ErrUnknownLanguage), qt.IsTrue)
}

func TestContentConstrain(t *testing.T) {
	c := qt.New(t)
	content := Content{Theme: "mango leaves", EnglishText: "Happy Ugadi", TeluguText: "ఉగాది"}
	c.Assert(content.Constrain(LanguageEnglish).TeluguText, qt.Equals, "")
	c.Assert(content.Constrain(LanguageEnglish).EnglishText, qt.Equals, "Happy Ugadi")
	c.Assert(content.Constrain(LanguageTelugu).EnglishText, qt.Equals, "")
	c.Assert(content.Constrain(LanguageBoth), qt.Equals, content)
}

func TestParseContent(t *testing.T) {
	c := qt.New(t)
	content, err := parseContent("```json\n{\"theme\":\" festive \",\"englishText\":\"Hi\",\"teluguText\":\"\"}\n```")
	c.Assert(err, qt.IsNil)
	c.Assert(content, qt.Equals, Content{Theme: "festive", EnglishText: "Hi"})

	for _, bad := range []string{
		"not json at all",
		`{"theme": "x"}`,
		`{"theme": "", "englishText": "a", "teluguText": "b"}`,
		`{"theme": "x", "englishText": 3, "teluguText": "b"}`,
		`["theme"]`,
	} {
		_, err := parseContent(bad)
		c.Assert(errors.Is(err, ErrMalformedResponse), qt.IsTrue, qt.Commentf("input %s", bad))
	}
}

func TestGeminiGenerateContent(t *testing.T) {
	c := qt.New(t)
	content := &fakeModel{text: `{"theme":"mango leaves","englishText":"Happy Ugadi","teluguText":"ఉగాది శుభాకాంక్షలు"}`}
	g := newTestGemini(c, content, &fakeModel{})

	got, err := g.GenerateContent(context.Background(), "ugadi wishes", LanguageEnglish)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, Content{Theme: "mango leaves", EnglishText: "Happy Ugadi"})
	c.Assert(content.prompts, qt.HasLen, 1)
	c.Assert(content.prompts[0], qt.Contains, "ugadi wishes")
	c.Assert(content.prompts[0], qt.Contains, `"teluguText" must be an empty string`)
}

func TestGeminiGenerateContentErrors(t *testing.T) {
	c := qt.New(t)

	g := newTestGemini(c, &fakeModel{text: ""}, &fakeModel{})
	_, err := g.GenerateContent(context.Background(), "idea", LanguageBoth)
	c.Assert(errors.Is(err, ErrMalformedResponse), qt.IsTrue)

	g = newTestGemini(c, &fakeModel{err: &googleapi.Error{Code: 403, Message: "denied"}}, &fakeModel{})
	_, err = g.GenerateContent(context.Background(), "idea", LanguageBoth)
	c.Assert(errors.Is(err, ErrAuthentication), qt.IsTrue)

	g = newTestGemini(c, &fakeModel{err: errors.New("API key not valid. Please pass a valid API key.")}, &fakeModel{})
	_, err = g.GenerateContent(context.Background(), "idea", LanguageBoth)
	c.Assert(errors.Is(err, ErrAuthentication), qt.IsTrue)

	g = newTestGemini(c, &fakeModel{err: errors.New("connection reset")}, &fakeModel{})
	_, err = g.GenerateContent(context.Background(), "idea", LanguageBoth)
	c.Assert(errors.Is(err, ErrProvider), qt.IsTrue)
}

func TestGeminiSummarizeTitle(t *testing.T) {
	c := qt.New(t)
	g := newTestGemini(c, &fakeModel{}, &fakeModel{text: "\"Ugadi Festival Wishes.\"\nextra"})
	c.Assert(g.SummarizeTitle(context.Background(), "ugadi"), qt.Equals, "Ugadi Festival Wishes")

	g = newTestGemini(c, &fakeModel{}, &fakeModel{err: errors.New("boom")})
	c.Assert(g.SummarizeTitle(context.Background(), "ugadi"), qt.Equals, "")
}

func TestNewProvidersRequireKey(t *testing.T) {
	c := qt.New(t)
	_, err := NewGemini(context.Background(), &Config{})
	c.Assert(errors.Is(err, ErrAuthentication), qt.IsTrue)
	_, err = NewImagen(&Config{}, nil)
	c.Assert(errors.Is(err, ErrAuthentication), qt.IsTrue)
}

func TestUnavailable(t *testing.T) {
	c := qt.New(t)
	u := Unavailable{Err: ErrAuthentication}
	_, err := u.GenerateContent(context.Background(), "idea", LanguageBoth)
	c.Assert(errors.Is(err, ErrAuthentication), qt.IsTrue)
	_, err = u.GenerateImage(context.Background(), "theme")
	c.Assert(errors.Is(err, ErrAuthentication), qt.IsTrue)
	c.Assert(u.SummarizeTitle(context.Background(), "idea"), qt.Equals, "")
}
