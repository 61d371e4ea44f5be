package push

import (
	"bytes"
	"fmt"

	"github.com/golang/snappy"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"

	"github.com/yanminmin/sui/internal/misc"
)

// ContentEncoding is the value sent in the Content-Encoding header.
const ContentEncoding = "snappy"

// ContentType is the delimited-protobuf metrics exchange format.
var ContentType = string(expfmt.NewFormat(expfmt.TypeProtoDelim))

var encodeBufPool = misc.NewPool(func() *bytes.Buffer { return new(bytes.Buffer) })

// EncodeSnapshot stamps every sample in families with nowMillis, serializes
// the snapshot into the delimited protobuf exchange format, and
// snappy-compresses the result.
//
// The timestamp overwrite makes nowMillis the single logical observation
// instant for the whole push, even though the registry may have gathered the
// samples at slightly different times.
func EncodeSnapshot(families []*dto.MetricFamily, nowMillis int64) ([]byte, error) {
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			m.TimestampMs = proto.Int64(nowMillis)
		}
	}

	buf := encodeBufPool.Get()
	defer encodeBufPool.Put(buf)

	enc := expfmt.NewEncoder(buf, expfmt.NewFormat(expfmt.TypeProtoDelim))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return nil, fmt.Errorf("encode metric family %q: %w", mf.GetName(), err)
		}
	}

	return snappy.Encode(nil, buf.Bytes()), nil
}
