package app

import (
	"encoding/json"
	"io/ioutil"

	feevault "github.com/iov-one/feevault"
	"github.com/iov-one/feevault/errors"
)

// Genesis file format, designed to be overlayed with tendermint genesis.
type Genesis struct {
	ChainID  string           `json:"chain_id"`
	AppState feevault.Options `json:"app_state"`
}

// LoadGenesis tries to load a given file into a Genesis struct.
func LoadGenesis(filePath string) (Genesis, error) {
	var gen Genesis

	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "loading genesis file: %s", err)
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "unmarshaling genesis file: %s", err)
	}
	return gen, nil
}
