package rules

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// rawDocument mirrors the YAML shape of a rule file before
// conversion into the typed model.
type rawDocument struct {
	Required  []rawRule `koanf:"required"`
	Deny      []rawRule `koanf:"deny"`
	Review    []rawItem `koanf:"review"`
	Guideline []rawItem `koanf:"guideline"`
}

type rawRule struct {
	Label        string            `koanf:"label"`
	Type         string            `koanf:"type"`
	Message      string            `koanf:"message"`
	Keywords     []string          `koanf:"keywords"`
	Exec         string            `koanf:"exec"`
	Match        []rawMatchItem    `koanf:"match"`
	IncludeExts  []string          `koanf:"include_exts"`
	ExcludeExts  []string          `koanf:"exclude_exts"`
	ExcludeFiles []rawExcludeEntry `koanf:"exclude_files"`
	Doc          *rawDocConfig     `koanf:"doc"`
	Comment      *rawCommentConfig `koanf:"comment"`
	Test         *rawTestConfig    `koanf:"test"`
}

type rawItem struct {
	Message     string         `koanf:"message"`
	Match       []rawMatchItem `koanf:"match"`
	IncludeExts []string       `koanf:"include_exts"`
	ExcludeExts []string       `koanf:"exclude_exts"`
}

type rawMatchItem struct {
	Pattern  string   `koanf:"pattern"`
	Keywords []string `koanf:"keywords"`
	Cond     string   `koanf:"cond"`
}

type rawExcludeEntry struct {
	Filter  string `koanf:"filter"`
	Keyword string `koanf:"keyword"`
}

type rawDocConfig struct {
	Lang    string            `koanf:"lang"`
	Targets map[string]string `koanf:"targets"`
}

type rawCommentConfig struct {
	Lang   string            `koanf:"lang"`
	Custom *rawCommentSyntax `koanf:"custom"`
}

type rawCommentSyntax struct {
	Lines  []string   `koanf:"lines"`
	Blocks []rawBlock `koanf:"blocks"`
}

type rawBlock struct {
	Start string `koanf:"start"`
	End   string `koanf:"end"`
}

type rawTestConfig struct {
	Framework      string `koanf:"framework"`
	TestDirectory  string `koanf:"test_directory"`
	TestFileSuffix string `koanf:"test_file_suffix"`
	Require        string `koanf:"require"`
}

// loadRaw reads and decodes one rule file. Unknown keys are rejected
// so typos surface at load time instead of silently dropping rules.
func loadRaw(path string) (*rawDocument, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var raw rawDocument
	conf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			TagName:     "koanf",
			Result:      &raw,
			ErrorUnused: true,
		},
	}
	if err := k.UnmarshalWithConf("", &raw, conf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &raw, nil
}

// LoadDocument reads a rule file and converts it into the typed model.
func LoadDocument(path string) (*Document, error) {
	raw, err := loadRaw(path)
	if err != nil {
		return nil, err
	}
	return convertDocument(raw)
}
