package main

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContent []byte

type SiteInfo struct {
	Name        string `yaml:"name"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Email       string `yaml:"email"`
	LinkedIn    string `yaml:"linkedin"`
	GitHub      string `yaml:"github"`
	Location    string `yaml:"location"`
}

type NavItem struct {
	Name string `yaml:"name"`
	Href string `yaml:"href"`
}

type SkillGroup struct {
	Category string   `yaml:"category"`
	Items    []string `yaml:"items"`
}

type Job struct {
	Title        string   `yaml:"title"`
	Company      string   `yaml:"company"`
	Period       string   `yaml:"period"`
	Location     string   `yaml:"location"`
	Description  string   `yaml:"description"`
	Technologies []string `yaml:"technologies"`
}

type Project struct {
	Title        string   `yaml:"title"`
	Brief        string   `yaml:"brief"`
	Description  string   `yaml:"description"`
	Technologies []string `yaml:"technologies"`
	GitHub       string   `yaml:"github,omitempty"`
	Link         string   `yaml:"link,omitempty"`
}

type Degree struct {
	Degree   string `yaml:"degree"`
	School   string `yaml:"school"`
	Period   string `yaml:"period"`
	GPA      string `yaml:"gpa"`
	Location string `yaml:"location"`
}

// SiteContent is everything the pages say about the site owner.
type SiteContent struct {
	Site       SiteInfo     `yaml:"site"`
	About      string       `yaml:"about"`
	Navigation []NavItem    `yaml:"navigation"`
	Skills     []SkillGroup `yaml:"skills"`
	Experience []Job        `yaml:"experience"`
	Projects   []Project    `yaml:"projects"`
	Education  []Degree     `yaml:"education"`
}

// loadContent parses the content file at path, or the embedded default
// when path is empty.
func loadContent(path string) (*SiteContent, error) {
	data := defaultContent
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("reading content: %w", err)
		}
	}
	return parseContent(data)
}

func parseContent(data []byte) (*SiteContent, error) {
	var c SiteContent
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing content: %w", err)
	}
	if c.Site.Name == "" {
		return nil, errors.New("content: site.name is required")
	}
	return &c, nil
}
