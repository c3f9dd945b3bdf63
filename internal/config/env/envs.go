package env

import (
	"encoding/base64"
	"fmt"
	"log"
	"log/slog"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const DEFAULT_GHOSTPAY_API_URL = "https://api.ghostspaysv2.com/functions/v1/transactions"

// Values holds everything read from the environment at startup.
// It is built once by Load and passed to whoever needs it.
type Values struct {
	GHOSTPAY_SECRET_KEY string `env:"GHOSTPAY_SECRET_KEY" secret:"true"`
	GHOSTPAY_COMPANY_ID string `env:"GHOSTPAY_COMPANY_ID"`
	GHOSTPAY_API_URL    string `env:"GHOSTPAY_API_URL" default:"https://api.ghostspaysv2.com/functions/v1/transactions"`
	SERVER_ADDR         string `env:"SERVER_ADDR" default:"0.0.0.0"`
	SERVER_PORT         int    `env:"PORT" default:"5000"`
	DEBUG               bool   `env:"DEBUG" default:"true"`
	PPROF               bool   `env:"PPROF" default:"false"`

	// BasicAuth is base64("{secret}:"). Empty means test mode.
	BasicAuth string
}

// TestMode reports whether the processor credentials are missing.
func (v *Values) TestMode() bool {
	return v.BasicAuth == ""
}

// Addr is the host:port the HTTP server binds to.
func (v *Values) Addr() string {
	return v.SERVER_ADDR + ":" + strconv.Itoa(v.SERVER_PORT)
}

// Load reads an optional .env file and then the process environment.
func Load(filenames ...string) (*Values, error) {
	// Carrega o arquivo .env, se existir.
	if err := godotenv.Load(filenames...); err != nil {
		log.Println("Aviso: Não foi possível carregar o arquivo .env. Usando variáveis de ambiente do sistema.")
	}
	return Parse(os.LookupEnv)
}

// Parse fills Values using lookup, falling back to the `default` tag of each
// field. A value that does not parse keeps the default.
func Parse(lookup func(string) (string, bool)) (*Values, error) {
	values := &Values{}

	v := reflect.ValueOf(values).Elem()
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		envVarName, ok := fieldType.Tag.Lookup("env")
		if !ok {
			continue
		}
		defaultValue := fieldType.Tag.Get("default")

		if err := setField(field, defaultValue); err != nil {
			return nil, fmt.Errorf("invalid default for %s: %w", envVarName, err)
		}

		envVarValue, ok := lookup(envVarName)
		if !ok || strings.TrimSpace(envVarValue) == "" {
			continue
		}

		if err := setField(field, strings.TrimSpace(envVarValue)); err != nil {
			log.Printf("Aviso: Não foi possível fazer o parse de '%s' para a variável %s, usando '%s'\n", envVarValue, envVarName, defaultValue)
			if err := setField(field, defaultValue); err != nil {
				return nil, err
			}
		}
	}

	if values.SERVER_PORT <= 0 || values.SERVER_PORT > 65535 {
		return nil, fmt.Errorf("invalid PORT %d", values.SERVER_PORT)
	}

	if values.GHOSTPAY_SECRET_KEY != "" {
		values.BasicAuth = base64.StdEncoding.EncodeToString([]byte(values.GHOSTPAY_SECRET_KEY + ":"))
	} else {
		slog.Warn("============================================================")
		slog.Warn("AVISO: GHOSTPAY_SECRET_KEY não configurada, API em modo de teste")
		slog.Warn("============================================================")
	}

	return values, nil
}

func setField(field reflect.Value, raw string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if raw == "" {
			field.SetInt(0)
			return nil
		}
		intValue, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(intValue)

	case reflect.Bool:
		if raw == "" {
			field.SetBool(false)
			return nil
		}
		boolValue, err := strconv.ParseBool(strings.ToLower(raw))
		if err != nil {
			return err
		}
		field.SetBool(boolValue)

	default:
		return fmt.Errorf("unsupported kind %s", field.Kind())
	}
	return nil
}

// Show prints the loaded values aligned by name. Secrets are masked.
func Show(values *Values) {
	log.SetPrefix("Env: ")
	log.SetFlags(0)
	defer log.SetPrefix("")
	defer log.SetFlags(log.LstdFlags)
	defer log.Println("---------------------------------------------------------------------------------------------")

	log.Println("---------------------------------------------------------------------------------------------")
	v := reflect.ValueOf(values).Elem()
	t := v.Type()

	// Encontra o comprimento do nome mais longo para alinhamento.
	maxLength := 0
	for i := 0; i < t.NumField(); i++ {
		name, ok := t.Field(i).Tag.Lookup("env")
		if ok && len(name) > maxLength {
			maxLength = len(name)
		}
	}

	format := fmt.Sprintf("%%-%ds: %%v", maxLength)

	for i := 0; i < v.NumField(); i++ {
		name, ok := t.Field(i).Tag.Lookup("env")
		if !ok {
			continue
		}
		value := v.Field(i).Interface()
		if t.Field(i).Tag.Get("secret") == "true" {
			value = mask(v.Field(i).String())
		}
		log.Printf(format, name, value)
	}
}

func mask(s string) string {
	if s == "" {
		return "<não configurada>"
	}
	if len(s) <= 4 {
		return "****"
	}
	return s[:4] + strings.Repeat("*", len(s)-4)
}
