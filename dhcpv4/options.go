package dhcpv4

import (
	"errors"
	"strings"

	"github.com/google/gopacket/layers"
	"github.com/insomniacslk/dhcp/rfc1035label"
	"github.com/soypat/dhcpc"
)

// OptionConfig configures one slot of the client's option store.
type OptionConfig struct {
	Code OptNum
	// MaxLen is the largest option value the slot can hold. Longer received
	// values are not captured.
	MaxLen uint8
	// Transmit appends the stored value to DISCOVER and REQUEST messages.
	// A parameter request list slot is merged into the list the client
	// always sends instead.
	Transmit bool
}

// optionStore holds configured outbound option values and values captured
// from server replies. Slots are fixed at configuration so that no memory
// is allocated afterwards.
type optionStore struct {
	cfg  []OptionConfig
	off  []uint16
	n    []uint8
	data []byte
}

func (s *optionStore) reset(cfg []OptionConfig) error {
	var v dhcpc.Validator
	total := 0
	for i, oc := range cfg {
		switch oc.Code {
		case OptPad, OptEnd, OptMessageType, OptOptionOverload, OptClientFQDN:
			v.AddFieldErr("Options", errors.New("reserved option code "+oc.Code.String()))
		case OptRequestedIPaddress, OptServerIdentification:
			if oc.Transmit {
				v.AddFieldErr("Options", errors.New("option "+oc.Code.String()+" is set by the client and cannot be transmitted"))
			}
		}
		if oc.MaxLen == 0 {
			v.AddFieldErr("Options", errors.New("zero MaxLen for option "+oc.Code.String()))
		} else if oc.Code == OptParameterRequestList && int(oc.MaxLen) > 255-defaultParamReqLen {
			v.AddFieldErr("Options", errors.New("parameter request list slot too large"))
		}
		for j := range i {
			if cfg[j].Code == oc.Code {
				v.AddFieldErr("Options", errors.New("duplicate option "+oc.Code.String()))
			}
		}
		total += int(oc.MaxLen)
	}
	if v.HasError() {
		return v.Err()
	}
	s.cfg = append(s.cfg[:0], cfg...)
	s.off = s.off[:0]
	s.n = s.n[:0]
	off := 0
	for _, oc := range cfg {
		s.off = append(s.off, uint16(off))
		s.n = append(s.n, 0)
		off += int(oc.MaxLen)
	}
	if cap(s.data) < total {
		s.data = make([]byte, total)
	}
	s.data = s.data[:total]
	return nil
}

func (s *optionStore) index(code OptNum) int {
	if s == nil {
		return -1
	}
	for i := range s.cfg {
		if s.cfg[i].Code == code {
			return i
		}
	}
	return -1
}

func (s *optionStore) value(i int) []byte {
	return s.data[s.off[i] : int(s.off[i])+int(s.n[i])]
}

// write sets the value of a slot. An empty value clears the slot. Values
// that would encode as a malformed option are rejected.
func (s *optionStore) write(code OptNum, data []byte) error {
	i := s.index(code)
	if i < 0 {
		return dhcpc.ErrUnknownOption
	} else if len(data) > int(s.cfg[i].MaxLen) {
		return dhcpc.ErrOptionLength
	} else if len(data) != 0 && !validOptionLen(code, len(data)) {
		return dhcpc.ErrOptionLength
	}
	s.n[i] = uint8(copy(s.data[s.off[i]:], data))
	return nil
}

func (s *optionStore) read(code OptNum, dst []byte) (int, error) {
	i := s.index(code)
	if i < 0 {
		return 0, dhcpc.ErrUnknownOption
	}
	v := s.value(i)
	if len(dst) < len(v) {
		return 0, dhcpc.ErrShortBuffer
	}
	return copy(dst, v), nil
}

// capture stores a received option value if a slot for it exists and can
// hold it. Other options are skipped.
func (s *optionStore) capture(code OptNum, data []byte) {
	i := s.index(code)
	if i < 0 || len(data) > int(s.cfg[i].MaxLen) {
		return
	}
	s.n[i] = uint8(copy(s.data[s.off[i]:], data))
}

// paramReqExtra returns the option codes appended to the default parameter
// request list.
func (s *optionStore) paramReqExtra() []byte {
	i := s.index(OptParameterRequestList)
	if i < 0 {
		return nil
	}
	return s.value(i)
}

func (s *optionStore) isTransmitted(i int) bool {
	return s.cfg[i].Transmit && s.n[i] > 0 && s.cfg[i].Code != OptParameterRequestList
}

// txLen returns the encoded size of all options appended to DISCOVER and
// REQUEST messages.
func (s *optionStore) txLen() (n int) {
	if s == nil {
		return 0
	}
	for i := range s.cfg {
		if s.isTransmitted(i) {
			n += 2 + int(s.n[i])
		}
	}
	return n
}

func (s *optionStore) encodeTx(dst []byte) (n int, err error) {
	if s == nil {
		return 0, nil
	}
	for i := range s.cfg {
		if !s.isTransmitted(i) {
			continue
		}
		nopt, err := EncodeOption(dst[n:], s.cfg[i].Code, s.value(i)...)
		if err != nil {
			return n, err
		}
		n += nopt
	}
	return n, nil
}

func (s *optionStore) maxTxLen() (n int) {
	for i := range s.cfg {
		if s.cfg[i].Transmit && s.cfg[i].Code != OptParameterRequestList {
			n += 2 + int(s.cfg[i].MaxLen)
		}
	}
	return n
}

// preload writes values from a gopacket option list into the store.
func (s *optionStore) preload(opts layers.DHCPOptions) error {
	for _, o := range opts {
		if err := s.write(OptNum(o.Type), o.Data); err != nil {
			return errors.Join(err, errors.New("preloading option "+OptNum(o.Type).String()))
		}
	}
	return nil
}

func paramReqListLen(extra []byte) int {
	return 2 + defaultParamReqLen + len(extra)
}

func encodeParamReqList(dst []byte, extra []byte) (int, error) {
	n := paramReqListLen(extra)
	if len(dst) < n {
		return 0, dhcpc.ErrShortBuffer
	}
	dst[0] = byte(OptParameterRequestList)
	dst[1] = byte(n - 2)
	copy(dst[2:], defaultParamReqList[:])
	copy(dst[2+defaultParamReqLen:], extra)
	return n, nil
}

// fqdnLen returns the encoded size of the client FQDN option for a domain
// name or 0 if the name is empty and the option is omitted.
func fqdnLen(domain []byte) int {
	if len(domain) == 0 {
		return 0
	}
	return 2 + sizeFQDNFixed + len(domain) + 1
}

// encodeFQDN writes the client FQDN option. The client asks the server not
// to perform DNS updates and marks the name as canonical wire format.
func encodeFQDN(dst []byte, domain []byte) (int, error) {
	n := fqdnLen(domain)
	if n == 0 {
		return 0, nil
	} else if len(dst) < n {
		return 0, dhcpc.ErrShortBuffer
	}
	dst[0] = byte(OptClientFQDN)
	dst[1] = byte(n - 2)
	dst[2] = fqdnFlagN | fqdnFlagE
	dst[3] = 0 // Deprecated RCODE1.
	dst[4] = 0 // Deprecated RCODE2.
	copy(dst[5:], domain)
	dst[n-1] = 0
	return n, nil
}

// FQDNFromHostname encodes a dotted host name as the canonical wire format
// name carried by the client FQDN option. The root label terminator is not
// included since it is appended when the option is encoded.
func FQDNFromHostname(host string) ([]byte, error) {
	host = strings.TrimSuffix(host, ".")
	if host == "" {
		return nil, errors.New("empty host name")
	}
	for _, label := range strings.Split(host, ".") {
		if len(label) == 0 || len(label) > 63 {
			return nil, errors.New("invalid host name label length")
		}
	}
	labels := rfc1035label.Labels{Labels: []string{host}}
	b := labels.ToBytes()
	if len(b) > 0 && b[len(b)-1] == 0 {
		b = b[:len(b)-1]
	}
	return b, nil
}
