package ethereum

import (
	"bytes"
	_ "embed"
	"fmt"
	"math/big"
	"sync"

	"github.com/bnema/waveportal-cli/internal/domain"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

const (
	methodReadAll   = "getAllWaves"
	methodReadCount = "getTotalWaves"
	methodSubmit    = "wave"
)

//go:embed waveportal.abi.json
var contractABIJSON []byte

var (
	parsedABI    abi.ABI
	parsedABIErr error
	parseABIOnce sync.Once
)

func contractABI() (abi.ABI, error) {
	parseABIOnce.Do(func() {
		parsedABI, parsedABIErr = abi.JSON(bytes.NewReader(contractABIJSON))
		if parsedABIErr != nil {
			parsedABIErr = fmt.Errorf("parse contract abi: %w", parsedABIErr)
		}
	})

	return parsedABI, parsedABIErr
}

// wave mirrors the tuple returned by getAllWaves.
type wave struct {
	Waver     common.Address
	Message   string
	Timestamp *big.Int
}

func (w wave) record() domain.Record {
	return domain.Record{
		Sender:      domain.Address(w.Waver.Hex()),
		SubmittedAt: unixSeconds(w.Timestamp),
		Message:     w.Message,
	}
}

func decodeWaves(contract abi.ABI, data []byte) ([]domain.Record, error) {
	out, err := contract.Unpack(methodReadAll, data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", methodReadAll, err)
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("decode %s: expected 1 output, got %d", methodReadAll, len(out))
	}

	waves := *abi.ConvertType(out[0], new([]wave)).(*[]wave)
	records := make([]domain.Record, 0, len(waves))
	for _, w := range waves {
		records = append(records, w.record())
	}

	return records, nil
}

func decodeCount(contract abi.ABI, data []byte) (uint64, error) {
	out, err := contract.Unpack(methodReadCount, data)
	if err != nil {
		return 0, fmt.Errorf("decode %s: %w", methodReadCount, err)
	}
	if len(out) != 1 {
		return 0, fmt.Errorf("decode %s: expected 1 output, got %d", methodReadCount, len(out))
	}

	count, ok := out[0].(*big.Int)
	if !ok || count == nil {
		return 0, fmt.Errorf("decode %s: unexpected output %T", methodReadCount, out[0])
	}
	if !count.IsUint64() {
		return 0, fmt.Errorf("decode %s: count %s overflows uint64", methodReadCount, count)
	}

	return count.Uint64(), nil
}

// decodeEvent turns a NewWave log into a Record. The sender is the single
// indexed topic; timestamp and message are ABI-encoded in the data.
func decodeEvent(event abi.Event, log types.Log) (domain.Record, error) {
	if len(log.Topics) != 2 || log.Topics[0] != event.ID {
		return domain.Record{}, fmt.Errorf("decode %s: unexpected topics %v", event.Name, log.Topics)
	}

	values, err := event.Inputs.NonIndexed().Unpack(log.Data)
	if err != nil {
		return domain.Record{}, fmt.Errorf("decode %s: %w", event.Name, err)
	}
	if len(values) != 2 {
		return domain.Record{}, fmt.Errorf("decode %s: expected 2 values, got %d", event.Name, len(values))
	}

	timestamp, ok := values[0].(*big.Int)
	if !ok {
		return domain.Record{}, fmt.Errorf("decode %s: unexpected timestamp %T", event.Name, values[0])
	}
	message, ok := values[1].(string)
	if !ok {
		return domain.Record{}, fmt.Errorf("decode %s: unexpected message %T", event.Name, values[1])
	}

	return domain.Record{
		Sender:      domain.Address(common.BytesToAddress(log.Topics[1].Bytes()).Hex()),
		SubmittedAt: unixSeconds(timestamp),
		Message:     message,
	}, nil
}

func unixSeconds(value *big.Int) int64 {
	if value == nil || !value.IsInt64() {
		return 0
	}

	return value.Int64()
}
