package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	EndpointKey = "COSMOS_ENDPOINT"
	SecretKey   = "COSMOS_KEY"
)

var (
	ErrConfig = errors.New("could not load configuration")
)

type Env struct {
	AppPort        int           `envconfig:"APP_PORT"        default:"8000"`
	AppEnv         string        `envconfig:"APP_ENV"         default:"development"`
	EnvFile        string        `envconfig:"ENV_FILE"        default:".env"`
	StoreBackend   string        `envconfig:"STORE_BACKEND"   default:"cosmos"`
	DBName         string        `envconfig:"DB_NAME"         default:"urlshortenerdb"`
	DBContainer    string        `envconfig:"DB_CONTAINER"    default:"urls"`
	RedirectOrigin string        `envconfig:"REDIRECT_ORIGIN" default:""`
	AtomicClicks   bool          `envconfig:"ATOMIC_CLICKS"   default:"false"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
}

func (e Env) Production() bool {
	return e.AppEnv == "production"
}

func Process() (env Env, err error) {
	err = envconfig.Process("", &env)
	return
}

// Credentials are the two secrets needed to reach the document store.
type Credentials struct {
	Endpoint string
	Key      string
}

func (c Credentials) complete() bool {
	return c.Endpoint != "" && c.Key != ""
}

// LoadCredentials resolves the store credentials from, in order: a plain
// key=value read of envFile, the process environment, and a dotenv parse of
// envFile. The first source holding both values wins.
func LoadCredentials(envFile string) (Credentials, error) {
	if values, err := readKeyValueFile(envFile); err == nil {
		if creds := fromMap(values); creds.complete() {
			return creds, nil
		}
	}

	creds := Credentials{
		Endpoint: os.Getenv(EndpointKey),
		Key:      os.Getenv(SecretKey),
	}
	if creds.complete() {
		return creds, nil
	}

	if values, err := godotenv.Read(envFile); err == nil {
		if creds := fromMap(values); creds.complete() {
			return creds, nil
		}
	}

	return Credentials{}, fmt.Errorf("%w: %s and %s must be set", ErrConfig, EndpointKey, SecretKey)
}

func fromMap(values map[string]string) Credentials {
	return Credentials{
		Endpoint: values[EndpointKey],
		Key:      values[SecretKey],
	}
}

// readKeyValueFile splits every line at its first '='. Quotes, comments and
// "export" prefixes are left as-is; godotenv covers those.
func readKeyValueFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	values := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		values[key] = value
	}
	return values, scanner.Err()
}
