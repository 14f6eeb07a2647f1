package account

import (
	"fmt"
	"os"
	"strconv"

	"github.com/drakos74/free-coin-cross/internal/api"
)

// Name is the name of an account as used in the environment variables.
type Name string

// Secret defines a security pair of a key and secret
type Secret struct {
	Key    string
	Secret string
}

// Token represents a tokenized secret combination of a string and an ID.
type Token struct {
	Token string
	ID    int64
}

// Details define the account details.
type Details struct {
	Name     Name             `yaml:"name"`
	Exchange api.ExchangeName `yaml:"exchange"`
}

// Format returns the environment naming of the account credentials.
func (d Details) Format() Format {
	return NewFormat(d.Name, d.Exchange)
}

// LoadSecret reads the exchange credentials of the account from the environment.
func LoadSecret(format Format) (Secret, error) {
	key, ok := os.LookupEnv(format.Key())
	if !ok || key == "" {
		return Secret{}, fmt.Errorf("missing env variable %s", format.Key())
	}
	secret, ok := os.LookupEnv(format.Secret())
	if !ok || secret == "" {
		return Secret{}, fmt.Errorf("missing env variable %s", format.Secret())
	}
	return Secret{
		Key:    key,
		Secret: secret,
	}, nil
}

// LoadToken reads the bot token and chat id of the account from the environment.
func LoadToken(format Format) (Token, error) {
	token, ok := os.LookupEnv(format.Token())
	if !ok || token == "" {
		return Token{}, fmt.Errorf("missing env variable %s", format.Token())
	}
	id, err := strconv.ParseInt(os.Getenv(format.ChatID()), 10, 64)
	if err != nil {
		return Token{}, fmt.Errorf("could not parse %s: %w", format.ChatID(), err)
	}
	return Token{
		Token: token,
		ID:    id,
	}, nil
}
