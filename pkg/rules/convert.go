package rules

import (
	"regexp"

	"github.com/reclint-labs/reclint/pkg/comment"
	"github.com/reclint-labs/reclint/pkg/filter"
	"github.com/reclint-labs/reclint/pkg/matcher"
)

// convertDocument turns a raw YAML document into the typed model.
// Every variant invariant is checked here so that a bad rule file
// fails the load, not a later validation run.
func convertDocument(raw *rawDocument) (*Document, error) {
	doc := &Document{}

	for _, r := range raw.Required {
		rule, err := convertRule(r)
		if err != nil {
			return nil, err
		}
		doc.Required = append(doc.Required, rule)
	}
	for _, r := range raw.Deny {
		rule, err := convertRule(r)
		if err != nil {
			return nil, err
		}
		doc.Deny = append(doc.Deny, rule)
	}
	for _, it := range raw.Review {
		item, err := convertItem(it)
		if err != nil {
			return nil, err
		}
		doc.Review = append(doc.Review, item)
	}
	for _, it := range raw.Guideline {
		item, err := convertItem(it)
		if err != nil {
			return nil, err
		}
		doc.Guideline = append(doc.Guideline, item)
	}

	return doc, nil
}

func convertRule(raw rawRule) (Rule, error) {
	base, err := convertBase(raw)
	if err != nil {
		return nil, err
	}

	switch raw.Type {
	case KindText:
		if len(raw.Keywords) == 0 {
			return nil, configErrorf(raw.Label, "type 'forbidden_texts' requires 'keywords'")
		}
		if raw.Exec != "" {
			return nil, configErrorf(raw.Label, "type 'forbidden_texts' must not have 'exec'")
		}
		return TextRule{Base: base, Keywords: raw.Keywords}, nil

	case KindRegex:
		if len(raw.Keywords) == 0 {
			return nil, configErrorf(raw.Label, "type 'forbidden_patterns' requires 'keywords'")
		}
		if raw.Exec != "" {
			return nil, configErrorf(raw.Label, "type 'forbidden_patterns' must not have 'exec'")
		}
		patterns := make([]*regexp.Regexp, 0, len(raw.Keywords))
		for _, k := range raw.Keywords {
			re, err := regexp.Compile(k)
			if err != nil {
				return nil, configErrorf(raw.Label, "invalid regex %q: %v", k, err)
			}
			patterns = append(patterns, re)
		}
		return RegexRule{Base: base, Keywords: raw.Keywords, Patterns: patterns}, nil

	case KindExec:
		if raw.Exec == "" {
			return nil, configErrorf(raw.Label, "type 'custom' requires 'exec'")
		}
		if len(raw.Keywords) > 0 {
			return nil, configErrorf(raw.Label, "type 'custom' must not have 'keywords'")
		}
		return ExecRule{Base: base, Exec: raw.Exec}, nil

	case KindDoc:
		if raw.Doc == nil {
			return nil, configErrorf(raw.Label, "type 'require_doc' requires a 'doc' config")
		}
		if raw.Doc.Lang == "" {
			return nil, configErrorf(raw.Label, "'doc' config requires 'lang'")
		}
		if len(raw.Doc.Targets) == 0 {
			return nil, configErrorf(raw.Label, "'doc' config requires at least one target")
		}
		targets := make(map[string]Visibility, len(raw.Doc.Targets))
		for name, vis := range raw.Doc.Targets {
			v, err := parseVisibility(raw.Label, vis)
			if err != nil {
				return nil, err
			}
			targets[name] = v
		}
		return DocRule{Base: base, Lang: raw.Doc.Lang, Targets: targets}, nil

	case KindEnglishComment:
		return convertCommentRule(raw, base, CommentEnglish)

	case KindJapaneseComment:
		return convertCommentRule(raw, base, CommentJapanese)

	case KindTestName:
		if raw.Test == nil || raw.Test.Framework == "" {
			return nil, configErrorf(raw.Label, "type 'test_name' requires 'test.framework'")
		}
		return TestNameRule{Base: base, Framework: raw.Test.Framework}, nil

	case KindTestExistence:
		if raw.Test == nil || raw.Test.Framework == "" {
			return nil, configErrorf(raw.Label, "type 'test_exists' requires 'test.framework'")
		}
		require := RequireExists
		switch raw.Test.Require {
		case "", "exists":
		case "all_public":
			require = RequireAllPublic
		default:
			return nil, configErrorf(raw.Label, "unknown require level %q", raw.Test.Require)
		}
		return TestExistenceRule{
			Base:      base,
			Framework: raw.Test.Framework,
			Config: TestExistenceConfig{
				TestDirectory:  raw.Test.TestDirectory,
				TestFileSuffix: raw.Test.TestFileSuffix,
				Require:        require,
			},
		}, nil

	case "":
		return nil, configErrorf(raw.Label, "missing 'type'")
	default:
		return nil, configErrorf(raw.Label, "unknown type %q", raw.Type)
	}
}

func convertCommentRule(raw rawRule, base Base, language CommentLanguage) (Rule, error) {
	cfg := raw.Comment
	if cfg == nil {
		return nil, configErrorf(raw.Label, "a 'comment' config is required")
	}
	switch {
	case cfg.Lang != "" && cfg.Custom != nil:
		return nil, configErrorf(raw.Label, "cannot specify both 'lang' and 'custom'")
	case cfg.Lang == "" && cfg.Custom == nil:
		return nil, configErrorf(raw.Label, "either 'lang' or 'custom' is required")
	case cfg.Lang != "":
		if _, ok := comment.SyntaxFor(cfg.Lang); !ok {
			return nil, configErrorf(raw.Label, "unknown comment language %q", cfg.Lang)
		}
		return CommentLanguageRule{Base: base, Language: language, Lang: cfg.Lang}, nil
	default:
		blocks := make([]comment.Block, 0, len(cfg.Custom.Blocks))
		for _, b := range cfg.Custom.Blocks {
			blocks = append(blocks, comment.Block{Start: b.Start, End: b.End})
		}
		syntax := &comment.Syntax{Lines: cfg.Custom.Lines, Blocks: blocks}
		return CommentLanguageRule{Base: base, Language: language, Custom: syntax}, nil
	}
}

func convertBase(raw rawRule) (Base, error) {
	m, err := convertMatcher(raw.Label, raw.Match)
	if err != nil {
		return Base{}, err
	}
	exclude, err := convertExcludeFilter(raw.Label, raw.ExcludeFiles)
	if err != nil {
		return Base{}, err
	}
	return Base{
		RuleLabel:   raw.Label,
		RuleMessage: raw.Message,
		Match:       m,
		Ext:         filter.ExtFilter{Include: raw.IncludeExts, Exclude: raw.ExcludeExts},
		Exclude:     exclude,
	}, nil
}

func convertItem(raw rawItem) (Item, error) {
	m, err := convertMatcher("", raw.Match)
	if err != nil {
		return Item{}, err
	}
	return Item{
		Message: raw.Message,
		Match:   m,
		Ext:     filter.ExtFilter{Include: raw.IncludeExts, Exclude: raw.ExcludeExts},
	}, nil
}

func convertMatcher(label string, items []rawMatchItem) (matcher.Matcher, error) {
	if len(items) == 0 {
		return matcher.Matcher{}, nil
	}
	converted := make([]matcher.Item, 0, len(items))
	for _, it := range items {
		pattern, ok := matcher.ParsePattern(it.Pattern)
		if !ok {
			return matcher.Matcher{}, configErrorf(label, "unknown match pattern %q", it.Pattern)
		}
		cond, ok := matcher.ParseCond(it.Cond)
		if !ok {
			return matcher.Matcher{}, configErrorf(label, "unknown match cond %q", it.Cond)
		}
		converted = append(converted, matcher.Item{Pattern: pattern, Keywords: it.Keywords, Cond: cond})
	}
	return matcher.New(converted), nil
}

func convertExcludeFilter(label string, entries []rawExcludeEntry) (filter.ExcludeFilter, error) {
	if len(entries) == 0 {
		return filter.ExcludeFilter{}, nil
	}
	converted := make([]filter.ExcludeEntry, 0, len(entries))
	for _, e := range entries {
		kind, ok := filter.ParseExcludeKind(e.Filter)
		if !ok {
			return filter.ExcludeFilter{}, configErrorf(label, "unknown exclude filter %q", e.Filter)
		}
		converted = append(converted, filter.ExcludeEntry{Kind: kind, Keyword: e.Keyword})
	}
	return filter.NewExcludeFilter(converted), nil
}

func parseVisibility(label, s string) (Visibility, error) {
	switch s {
	case "public":
		return VisibilityPublic, nil
	case "all":
		return VisibilityAll, nil
	default:
		return "", configErrorf(label, "unknown visibility %q", s)
	}
}
