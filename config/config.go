package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Source selects the relational backend. Exactly one of the fields should be
// set; Dir points at a directory of query-dump JSON files, SQLite at a
// snapshot database, Postgres at a live DSN.
type Source struct {
	Dir      string `yaml:"dir"`
	SQLite   string `yaml:"sqlite"`
	Postgres string `yaml:"postgres"`
}

type Root struct {
	Source Source `yaml:"source"`

	// StandoffFile is the filename of the informant standoff document, as
	// referenced from every transcript header.
	StandoffFile string `yaml:"standoff_file"`

	// TagsetFile is the tag declaration document used as whitelist.
	TagsetFile string `yaml:"tagset_file"`

	OutDir string `yaml:"out_dir"`
	DocId  string `yaml:"doc_id"`
}

// Default returns the configuration used when no file is given.
func Default() *Root {
	return &Root{
		StandoffFile: "standoff_informants.xml",
		TagsetFile:   "dioe-tags.tei.xml",
		OutDir:       ".",
		DocId:        "lapis_corpus",
	}
}

// Load reads a YAML configuration file on top of the defaults.
func Load(path string) (*Root, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
