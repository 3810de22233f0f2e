package config

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/lintang-b-s/osmtopology/pkg/util"
	"github.com/spf13/viper"
)

const (
	DEFAULT_CONFIG_DIR = "./data/"
	ENV_PREFIX         = "OSMTOPOLOGY"
)

type Config struct {
	InputFile        string   `mapstructure:"input_file" validate:"required"`
	OutputDir        string   `mapstructure:"output_dir" validate:"required"`
	Formats          []string `mapstructure:"formats" validate:"required,min=1,dive,oneof=csv geojson"`
	GeometryEncoding string   `mapstructure:"geometry_encoding" validate:"oneof=wkt polyline"`
	LengthMetric     string   `mapstructure:"length_metric" validate:"oneof=haversine spherical planar"`
	EmitWays         bool     `mapstructure:"emit_ways"`
	Compress         bool     `mapstructure:"compress"`
	SnapshotFile     string   `mapstructure:"snapshot_file"`
	EncodeWorkers    int      `mapstructure:"encode_workers" validate:"min=1,max=64"`
	LogLevel         string   `mapstructure:"log_level" validate:"oneof=debug info warn error"`
}

func setDefaults(v *viper.Viper) {
	// every key needs a default so AutomaticEnv can see it during Unmarshal.
	v.SetDefault("input_file", "")
	v.SetDefault("output_dir", "")
	v.SetDefault("formats", []string{"csv"})
	v.SetDefault("geometry_encoding", "wkt")
	v.SetDefault("length_metric", "haversine")
	v.SetDefault("emit_ways", false)
	v.SetDefault("compress", false)
	v.SetDefault("snapshot_file", "")
	v.SetDefault("encode_workers", 4)
	v.SetDefault("log_level", "info")
}

// ReadConfig loads config.yaml from dir, then applies OSMTOPOLOGY_* environment overrides.
// A missing config file is not an error; defaults and environment are used instead.
func ReadConfig(dir string) (*Config, error) {
	if dir == "" {
		dir = DEFAULT_CONFIG_DIR
	}
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix(ENV_PREFIX)
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "fatal error config file")
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "decode config")
	}
	return cfg, nil
}

// Validate checks cfg and returns every violation in one error, with field names as they appear in config.yaml.
func (cfg *Config) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" {
			return fld.Name
		}
		return name
	})

	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	msgs := make([]string, 0)
	for _, e := range translateError(err, trans) {
		msgs = append(msgs, e.Error())
	}
	return util.WrapErrorf(nil, util.ErrBadParamInput, "invalid config: %s", strings.Join(msgs, "; "))
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	for _, e := range validatorErrs {
		errs = append(errs, errors.New(e.Translate(trans)))
	}
	return errs
}
