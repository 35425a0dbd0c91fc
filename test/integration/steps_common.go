package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/cucumber/godog"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/authenticator/authn"
	gormstore "github.com/doodlesbykumbi/portfolio-cms/pkg/server/store/gorm"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte
	authToken    string
	// categories maps names used in scenarios to their ids
	categories map[string]uint
	// images maps uploaded filenames to their ids
	images map[string]uint
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{
		tc:         tc,
		categories: make(map[string]uint),
		images:     make(map[string]uint),
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	// Background steps
	sc.Step(`^a portfolio server is running$`, s.aPortfolioServerIsRunning)
	sc.Step(`^an admin "([^"]*)" exists with password "([^"]*)"$`, s.anAdminExistsWithPassword)
	sc.Step(`^I am logged in as "([^"]*)" with password "([^"]*)"$`, s.iAmLoggedInAs)

	// Authentication steps
	sc.Step(`^I log in as "([^"]*)" with password "([^"]*)"$`, s.iLogInAs)
	sc.Step(`^I request "([^"]*)" without a session$`, s.iRequestWithoutSession)
	s.registerSessionSteps(sc)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response should contain "([^"]*)"$`, s.theResponseShouldContain)

	// Catalog steps
	sc.Step(`^I create the category "([^"]*)" with color "([^"]*)"$`, s.iCreateTheCategory)
	sc.Step(`^I upload "([^"]*)" titled "([^"]*)" to category "([^"]*)"$`, s.iUploadToCategory)
	sc.Step(`^I upload "([^"]*)" titled "([^"]*)"$`, s.iUpload)
	sc.Step(`^I delete the category "([^"]*)"$`, s.iDeleteTheCategory)
	sc.Step(`^the portfolio should list (\d+) images?$`, s.thePortfolioShouldList)
	sc.Step(`^the portfolio filtered by "([^"]*)" should list (\d+) images?$`, s.thePortfolioFilteredShouldList)
	sc.Step(`^the image "([^"]*)" should be in category "([^"]*)"$`, s.theImageShouldBeInCategory)

	// Contact steps
	sc.Step(`^a visitor sends a contact message from "([^"]*)" with email "([^"]*)"$`, s.aVisitorSendsAContactMessage)
	sc.Step(`^the inbox should hold (\d+) unread messages?$`, s.theInboxShouldHold)

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, s.tc.Reset()
	})
}

// Background steps

func (s *StepsContext) aPortfolioServerIsRunning() error {
	// Server is already running via TestContext
	return nil
}

func (s *StepsContext) anAdminExistsWithPassword(username, password string) error {
	hash, err := authn.HashPassword([]byte(password))
	if err != nil {
		return err
	}
	return gormstore.NewAdminsStore(s.tc.DB).CreateAdmin(username, hash)
}

func (s *StepsContext) iAmLoggedInAs(username, password string) error {
	if err := s.iLogInAs(username, password); err != nil {
		return err
	}
	if s.authToken == "" {
		return fmt.Errorf("login failed with status %d: %s", s.response.StatusCode, s.responseBody)
	}
	return nil
}

// Authentication steps

func (s *StepsContext) iLogInAs(username, password string) error {
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	if err := s.do("POST", "/admin/login", "application/json", bytes.NewReader(body), false); err != nil {
		return err
	}

	s.authToken = ""
	if s.response.StatusCode == http.StatusOK {
		var out struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(s.responseBody, &out); err != nil {
			return fmt.Errorf("failed to parse login response: %w", err)
		}
		s.authToken = out.Token
	}
	return nil
}

func (s *StepsContext) iRequestWithoutSession(path string) error {
	return s.do("GET", path, "", nil, false)
}

// Response steps

func (s *StepsContext) theResponseStatusShouldBe(expectedStatus int) error {
	if s.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d: %s", expectedStatus, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theResponseShouldContain(expected string) error {
	if !strings.Contains(string(s.responseBody), expected) {
		return fmt.Errorf("expected body to contain %q, got %q", expected, s.responseBody)
	}
	return nil
}

// Catalog steps

func (s *StepsContext) iCreateTheCategory(name, colorCode string) error {
	body, _ := json.Marshal(map[string]interface{}{"name": name, "color_code": colorCode})
	if err := s.do("POST", "/admin/categories", "application/json", bytes.NewReader(body), true); err != nil {
		return err
	}
	if s.response.StatusCode != http.StatusCreated {
		return nil
	}
	var out struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(s.responseBody, &out); err != nil {
		return err
	}
	s.categories[name] = out.ID
	return nil
}

func (s *StepsContext) iUpload(filename, title string) error {
	return s.upload(filename, title, "")
}

func (s *StepsContext) iUploadToCategory(filename, title, category string) error {
	return s.upload(filename, title, category)
}

func (s *StepsContext) upload(filename, title, category string) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("files[]", filename)
	if err != nil {
		return err
	}
	if err := writeJPEG(part); err != nil {
		return err
	}
	_ = mw.WriteField("title", title)
	if category != "" {
		_ = mw.WriteField("categories[]", category)
	}
	if err := mw.Close(); err != nil {
		return err
	}

	if err := s.do("POST", "/admin/images", mw.FormDataContentType(), &buf, true); err != nil {
		return err
	}

	var out struct {
		Results []struct {
			Image *struct {
				ID uint `json:"id"`
			} `json:"image"`
		} `json:"results"`
	}
	if err := json.Unmarshal(s.responseBody, &out); err == nil && len(out.Results) == 1 && out.Results[0].Image != nil {
		s.images[filename] = out.Results[0].Image.ID
	}
	return nil
}

func (s *StepsContext) iDeleteTheCategory(name string) error {
	id, ok := s.categories[name]
	if !ok {
		return fmt.Errorf("category %q was not created in this scenario", name)
	}
	return s.do("DELETE", fmt.Sprintf("/admin/categories/%d", id), "", nil, true)
}

func (s *StepsContext) thePortfolioShouldList(count int) error {
	return s.portfolioCount("/api/portfolio", count)
}

func (s *StepsContext) thePortfolioFilteredShouldList(slug string, count int) error {
	return s.portfolioCount("/api/portfolio?category="+slug, count)
}

func (s *StepsContext) portfolioCount(path string, count int) error {
	if err := s.do("GET", path, "", nil, false); err != nil {
		return err
	}
	var out struct {
		Images []json.RawMessage `json:"images"`
	}
	if err := json.Unmarshal(s.responseBody, &out); err != nil {
		return fmt.Errorf("failed to parse portfolio: %w", err)
	}
	if len(out.Images) != count {
		return fmt.Errorf("expected %d images, got %d", count, len(out.Images))
	}
	return nil
}

func (s *StepsContext) theImageShouldBeInCategory(filename, category string) error {
	id, ok := s.images[filename]
	if !ok {
		return fmt.Errorf("image %q was not uploaded in this scenario", filename)
	}
	if err := s.do("GET", fmt.Sprintf("/api/images/%d", id), "", nil, false); err != nil {
		return err
	}
	var out struct {
		Categories []struct {
			Name string `json:"name"`
		} `json:"categories"`
	}
	if err := json.Unmarshal(s.responseBody, &out); err != nil {
		return err
	}
	for _, c := range out.Categories {
		if c.Name == category {
			return nil
		}
	}
	return fmt.Errorf("image %q is not in category %q: %s", filename, category, s.responseBody)
}

// Contact steps

func (s *StepsContext) aVisitorSendsAContactMessage(name, email string) error {
	body, _ := json.Marshal(map[string]string{
		"name":    name,
		"email":   email,
		"subject": "Wedding enquiry",
		"message": "Are you available next June?",
	})
	return s.do("POST", "/api/contact", "application/json", bytes.NewReader(body), false)
}

func (s *StepsContext) theInboxShouldHold(count int) error {
	if err := s.do("GET", "/admin/messages", "", nil, true); err != nil {
		return err
	}
	var messages []struct {
		IsRead bool `json:"is_read"`
	}
	if err := json.Unmarshal(s.responseBody, &messages); err != nil {
		return fmt.Errorf("failed to parse messages: %w", err)
	}
	unread := 0
	for _, m := range messages {
		if !m.IsRead {
			unread++
		}
	}
	if unread != count {
		return fmt.Errorf("expected %d unread messages, got %d", count, unread)
	}
	return nil
}

// do sends a request and records the response.
func (s *StepsContext) do(method, path, contentType string, body io.Reader, authenticated bool) error {
	req, err := http.NewRequest(method, s.tc.ServerURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+s.authToken)
	}

	s.response, err = s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	s.responseBody, err = io.ReadAll(s.response.Body)
	_ = s.response.Body.Close()
	return err
}

// writeJPEG writes a small solid-colour JPEG without camera metadata.
func writeJPEG(w io.Writer) error {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 0x19, G: 0x11, B: 0x4f, A: 0xff})
		}
	}
	return jpeg.Encode(w, img, nil)
}
