package dhcpmetrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/soypat/dhcpc"
	"github.com/soypat/dhcpc/dhcpv4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := NewCollector("test", prometheus.Labels{"iface": "eth0"})

	c.OnDrop(dhcpc.ErrMismatchXID)
	c.OnDrop(dhcpc.ErrMismatchXID)
	c.OnDrop(dhcpc.ErrMalformedOption)
	assert.Equal(t, 2.0, testutil.ToFloat64(c.drops.WithLabelValues(dhcpc.ErrMismatchXID.Error())))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.drops.WithLabelValues(dhcpc.ErrMalformedOption.Error())))

	c.OnTransmit(dhcpv4.MsgDiscover, [4]byte{255, 255, 255, 255})
	c.OnTransmit(dhcpv4.MsgRequest, [4]byte{192, 0, 2, 1})
	assert.Equal(t, 1.0, testutil.ToFloat64(c.transmits.WithLabelValues(dhcpv4.MsgDiscover.String(), "broadcast")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.transmits.WithLabelValues(dhcpv4.MsgRequest.String(), "unicast")))

	c.OnStateChange(dhcpv4.StateRequesting, dhcpv4.StateBound)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.leased))
	c.OnStateChange(dhcpv4.StateBound, dhcpv4.StateRenewing)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.leased))
	c.OnStateChange(dhcpv4.StateRebinding, dhcpv4.StateInit)
	assert.Equal(t, 0.0, testutil.ToFloat64(c.leased))

	c.OnConflict([4]byte{192, 0, 2, 10}, [6]byte{2, 0, 0, 0, 0, 1})
	c.OnConflict([4]byte{192, 0, 2, 11}, [6]byte{2, 0, 0, 0, 0, 1})
	assert.Equal(t, 2.0, testutil.ToFloat64(c.conflicts))
	assert.Equal(t, 1, testutil.CollectAndCount(c.lastPeer))
}

func TestCollectorRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector("dhcpc", nil)
	require.NoError(t, reg.Register(c))
	assert.Error(t, reg.Register(c), "duplicate registration accepted")

	c.OnDrop(dhcpc.ErrPacketDrop)
	c.OnStateChange(dhcpv4.StateInit, dhcpv4.StateSelecting)
	// drops, transitions, conflicts, leased. Empty vectors yield nothing.
	assert.Equal(t, 4, testutil.CollectAndCount(c))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(mfs))
	for _, mf := range mfs {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, "dhcpc_dhcp_drops_total")
	assert.Contains(t, names, "dhcpc_dhcp_leased")
}
