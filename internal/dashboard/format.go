package dashboard

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

const (
	missingTime = "—"
	timeLayout  = "2006-01-02 15:04:05"
	bytesPerGB  = 1 << 30
)

// FormatAmount renders a coin amount with 8 decimals. Values that are not
// numbers come back unchanged.
func FormatAmount(v interface{}) string {
	var raw string
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		return formatBTC(x)
	case int64:
		return formatBTC(float64(x))
	case int:
		return formatBTC(float64(x))
	case json.Number:
		raw = x.String()
	case string:
		raw = x
	default:
		return fmt.Sprint(v)
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return raw
	}
	return formatBTC(f)
}

func formatBTC(f float64) string {
	// btcutil rejects NaN and infinities
	amount, err := btcutil.NewAmount(f)
	if err != nil {
		return strconv.FormatFloat(f, 'f', 8, 64)
	}
	return strconv.FormatFloat(amount.ToBTC(), 'f', 8, 64)
}

// FormatTime renders epoch seconds as a local date and time.
func FormatTime(epochSec int64) string {
	if epochSec == 0 {
		return missingTime
	}
	return time.Unix(epochSec, 0).Local().Format(timeLayout)
}

// BytesToGB renders a byte count in GiB with two decimals.
func BytesToGB(bytes int64) string {
	return fmt.Sprintf("%.2f GB", float64(bytes)/bytesPerGB)
}

func FormatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// FormatRaw renders a decoded JSON value the way it arrived.
func FormatRaw(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

var chainNames = map[string]string{
	"main":    chaincfg.MainNetParams.Name,
	"test":    chaincfg.TestNet3Params.Name,
	"regtest": chaincfg.RegressionNetParams.Name,
	"signet":  chaincfg.SigNetParams.Name,
	"simnet":  chaincfg.SimNetParams.Name,
}

// ChainLabel adds the network name to the node's short chain id.
func ChainLabel(chain string) string {
	if name, ok := chainNames[chain]; ok && name != chain {
		return fmt.Sprintf("%s (%s)", chain, name)
	}
	return chain
}
