package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Station-Manager/errors"
	"github.com/knadh/koanf/maps"
	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/magiconair/properties"
)

// Format is a configuration file format understood by LoadConfigBytes.
type Format string

const (
	FormatProperties Format = "properties"
	FormatYAML       Format = "yaml"
	FormatJSON       Format = "json"
)

const keyDelim = "."

// fileConfig mirrors the keys of a client configuration file. Pointer and
// empty-string fields mean "keep the default".
type fileConfig struct {
	Enabled *bool  `koanf:"enablePegasusCustomLog"`
	Path    string `koanf:"pegasusLogPath"`
	Log     struct {
		Level                 string `koanf:"level"`
		Pattern               string `koanf:"pattern"`
		RetentionAge          string `koanf:"retentionAge"`
		DeleteFileNamePattern string `koanf:"deleteFileNamePattern"`
		MinFiles              *int   `koanf:"minFiles"`
		MaxFiles              *int   `koanf:"maxFiles"`
		RotationSize          string `koanf:"rotationSize"`
		SinkName              string `koanf:"sinkName"`
		RotatedPathPattern    string `koanf:"rotatedPathPattern"`
		Backend               string `koanf:"backend"`
		ReusePolicy           string `koanf:"reusePolicy"`
	} `koanf:"log"`
}

// LoadConfig reads a .properties, .yaml/.yml or .json client configuration
// file and returns the defaults overridden by the keys it sets. The result
// is validated.
func LoadConfig(path string) (SinkConfiguration, error) {
	const op errors.Op = "logging.LoadConfig"

	format, err := formatOf(path)
	if err != nil {
		return SinkConfiguration{}, errors.New(op).Err(err).Msg(errMsgConfigInvalid)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return SinkConfiguration{}, errors.New(op).Err(err).Msg("Reading the configuration file failed.")
	}
	return LoadConfigBytes(data, format)
}

func formatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".properties":
		return FormatProperties, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return emptyString, fmt.Errorf("unsupported configuration file %q", path)
	}
}

// LoadConfigBytes is LoadConfig for in-memory data.
func LoadConfigBytes(data []byte, format Format) (SinkConfiguration, error) {
	const op errors.Op = "logging.LoadConfigBytes"

	k := koanf.New(keyDelim)
	var err error
	switch format {
	case FormatProperties:
		err = k.Load(propertiesProvider(data), nil)
	case FormatYAML:
		err = k.Load(rawbytes.Provider(data), yaml.Parser())
	case FormatJSON:
		err = k.Load(rawbytes.Provider(data), kjson.Parser())
	default:
		err = fmt.Errorf("unsupported configuration format %q", format)
	}
	if err != nil {
		return SinkConfiguration{}, errors.New(op).Err(err).Msg(errMsgConfigInvalid)
	}

	var fc fileConfig
	if err := k.UnmarshalWithConf(emptyString, &fc, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return SinkConfiguration{}, errors.New(op).Err(err).Msg(errMsgConfigInvalid)
	}

	cfg, err := fc.options()
	if err != nil {
		return SinkConfiguration{}, err
	}
	if err := cfg.Validate(); err != nil {
		return SinkConfiguration{}, err
	}
	return cfg, nil
}

func (fc *fileConfig) options() (SinkConfiguration, error) {
	var opts []Option
	if fc.Enabled != nil {
		opts = append(opts, WithEnabled(*fc.Enabled))
	}
	opts = append(opts, WithPath(fc.Path))

	l := fc.Log
	if l.Level != emptyString {
		lvl, err := ParseLevel(l.Level)
		if err != nil {
			return SinkConfiguration{}, configError("MinLevel", err)
		}
		opts = append(opts, WithLevel(lvl))
	}
	if l.RetentionAge != emptyString {
		age, err := ParseRetentionAge(l.RetentionAge)
		if err != nil {
			return SinkConfiguration{}, configError("RetentionAge", err)
		}
		opts = append(opts, func(c *SinkConfiguration) { c.RetentionAge = age })
	}
	if l.RotationSize != emptyString {
		size, err := ParseByteSize(l.RotationSize)
		if err != nil {
			return SinkConfiguration{}, configError("RotationSizeThreshold", err)
		}
		opts = append(opts, WithRotationSize(size))
	}
	if l.MinFiles != nil {
		n := *l.MinFiles
		opts = append(opts, func(c *SinkConfiguration) { c.MinFiles = n })
	}
	if l.MaxFiles != nil {
		n := *l.MaxFiles
		opts = append(opts, func(c *SinkConfiguration) { c.MaxFiles = n })
	}

	set := func(v string, opt func(string) Option) {
		if v != emptyString {
			opts = append(opts, opt(v))
		}
	}
	set(l.Pattern, WithLinePattern)
	set(l.DeleteFileNamePattern, WithDeletionNamePattern)
	set(l.SinkName, WithSinkName)
	set(l.RotatedPathPattern, WithRotatedPathPattern)
	set(l.Backend, func(v string) Option { return WithBackend(Backend(strings.ToLower(v))) })
	set(l.ReusePolicy, func(v string) Option { return WithReusePolicy(ReusePolicy(strings.ToLower(v))) })

	return NewConfig(opts...), nil
}

// propertiesProvider is a koanf provider for java .properties content.
// Dotted keys become nested maps, so "log.level" and a YAML "log: {level}"
// land on the same field.
type propertiesProvider []byte

func (p propertiesProvider) ReadBytes() ([]byte, error) {
	return nil, errors.New("logging.propertiesProvider").Msg("ReadBytes is not supported.")
}

func (p propertiesProvider) Read() (map[string]interface{}, error) {
	props, err := properties.Load(p, properties.UTF8)
	if err != nil {
		return nil, err
	}
	flat := make(map[string]interface{}, props.Len())
	for k, v := range props.Map() {
		flat[k] = v
	}
	return maps.Unflatten(flat, keyDelim), nil
}
