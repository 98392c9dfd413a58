package dhcpv4

//go:generate stringer -type=OptNum,Op,MessageType,ClientState,event -linecomment -output stringers.go

// ClientState transition table:
//
//	StateInactive   -> |   StartAssign      | -> StateStartDelay
//	StateStartDelay -> |Broadcast available | -> StateInit
//	StateInit       -> |Init delay, Discover| -> StateSelecting
//	StateSelecting  -> |Offer, send Request | -> StateRequesting
//	StateRequesting -> |  Ack, lease valid  | -> StateProbing or StateBound
//	StateProbing    -> |  Address unique    | -> StateBound
//	StateBound      -> |     T1 expired     | -> StateRenewing
//	StateRenewing   -> |     T2 expired     | -> StateRebinding
//	StateRebinding  -> |   Lease expired    | -> StateInit
type ClientState uint8

const (
	// Client not started or stopped. Holds no address and no transport endpoint.
	StateInactive ClientState = iota // inactive
	// Assignment started, waiting for the limited broadcast address to become usable.
	StateStartDelay // start-delay
	// On start, NAK, decline, rejected lease or lease expiry enter INIT and wait the init delay.
	StateInit // init
	// After sending out a Discover enter SELECTING.
	StateSelecting // selecting
	// After receiving an offer and sending out request for offer enter REQUESTING.
	StateRequesting // requesting
	// After an ACK, when conflict detection is enabled, the address is probed before use.
	StateProbing // probing
	// Lease acquired and address in use.
	StateBound // bound
	// T1 expired, unicast REQUEST to the server that granted the lease.
	StateRenewing // renewing
	// T2 expired, broadcast REQUEST to any server.
	StateRebinding // rebinding
)

// IsLeased reports whether the client holds a usable address in this state.
func (s ClientState) IsLeased() bool {
	return s == StateBound || s == StateRenewing || s == StateRebinding
}

const (
	sizeSName    = 64  // Server name, part of BOOTP too.
	sizeBootFile = 128 // Boot file name, Legacy.
	sizeHeader   = 44
	// Offset of the legacy server name field.
	snameOffset = sizeHeader
	// Offset of the legacy boot file field.
	fileOffset = snameOffset + sizeSName
	// Size of the fixed BOOTP header.
	sizeFixedHeader = fileOffset + sizeBootFile
	// Magic Cookie offset measured from the start of the UDP payload.
	magicCookieOffset = sizeFixedHeader
	// Expected Magic Cookie value.
	MagicCookie uint32 = 0x63825363
	// DHCP Options offset measured from the start of the UDP payload.
	OptionsOffset = magicCookieOffset + 4

	DefaultClientPort = 68
	DefaultServerPort = 67
	// Port pair used in simple mode.
	SimpleClientPort = 10068
	SimpleServerPort = 10067
)

// Timing constants in seconds unless noted otherwise.
const (
	initialRetransmit     = 4
	maxRetransmit         = 64
	minRetransmit         = 60
	simpleRetransmit      = 1
	selectingTimeout      = 124
	conflictDiscoverDelay = 10

	// Address conflict detection constants of RFC 5227.
	probeWait         = 1
	probeNum          = 3
	probeMax          = 2
	announceWait      = 2
	maxConflicts      = 10
	rateLimitInterval = 61
	// Minimum T1 accepted when probing. Leaves time to finish probing and announcing.
	minProbeT1 = probeWait + (probeNum-1)*probeMax + announceWait

	// Largest raw lease time accepted. Leaves room for lease*7 in 32 bits.
	maxValidLease = 0x24924924
	infiniteLease = 0xffffffff
	// secs value while no acquisition or renewal is in progress.
	secsStop = 0xffff
)

const (
	// Size of message type option and END option together.
	sizeMsgTypeAndEnd = 3 + 1
	// Size of an option carrying one IPv4 address.
	sizeAddrOption = 2 + 4
	// Subnet mask and router are always requested.
	defaultParamReqLen = 2
	// FQDN option fixed fields: flags and two RCODE bytes.
	sizeFQDNFixed = 3
	// Default domain name buffer size for the FQDN option, terminator included.
	DefaultDomainNameSize = 64

	fqdnFlagS = 1 << 0 // Server should perform A RR updates.
	fqdnFlagO = 1 << 1 // Server override.
	fqdnFlagE = 1 << 2 // Canonical wire format encoding.
	fqdnFlagN = 1 << 3 // Server should not perform updates.
)

var defaultParamReqList = [defaultParamReqLen]byte{
	byte(OptSubnetMask),
	byte(OptRouter),
}

type OptNum uint8

// DHCP options. Taken from https://help.sonicwall.com/help/sw/eng/6800/26/2/3/content/Network_DHCP_Server.042.12.htm.
const (
	OptPad                         OptNum = 0  // pad
	OptSubnetMask                  OptNum = 1  // subnet mask
	OptTimeOffset                  OptNum = 2  // Time offset in seconds from UTC
	OptRouter                      OptNum = 3  // N/4 router addresses
	OptTimeServers                 OptNum = 4  // N/4 time server addresses
	OptNameServers                 OptNum = 5  // N/4 IEN-116 server addresses
	OptDNSServers                  OptNum = 6  // N/4 DNS server addresses
	OptLogServers                  OptNum = 7  // N/4 logging server addresses
	OptCookieServers               OptNum = 8  // N/4 quote server addresses
	OptLPRServers                  OptNum = 9  // N/4 printer server addresses
	OptImpressServers              OptNum = 10 // N/4 impress server addresses
	OptRLPServers                  OptNum = 11 // N/4 RLP server addresses
	OptHostName                    OptNum = 12 // Hostname string
	OptBootFileSize                OptNum = 13 // Size of boot file in 512 byte chunks
	OptMeritDumpFile               OptNum = 14 // Client to dump and name of file to dump to
	OptDomainName                  OptNum = 15 // The DNS domain name of the client
	OptSwapServer                  OptNum = 16 // Swap server addresses
	OptRootPath                    OptNum = 17 // Path name for root disk
	OptExtensionFile               OptNum = 18 // Patch name for more BOOTP info
	OptIPLayerForwarding           OptNum = 19 // Enable or disable IP forwarding
	OptSrcrouteenabler             OptNum = 20 // Enable or disable source routing
	OptPolicyFilter                OptNum = 21 // Routing policy filters
	OptMaximumDGReassemblySize     OptNum = 22 // Maximum datagram reassembly size
	OptDefaultIPTTL                OptNum = 23 // Default IP time-to-live
	OptPathMTUAgingTimeout         OptNum = 24 // Path MTU aging timeout
	OptMTUPlateau                  OptNum = 25 // Path MTU plateau table
	OptInterfaceMTUSize            OptNum = 26 // Interface MTU size
	OptAllSubnetsAreLocal          OptNum = 27 // All subnets are local
	OptBroadcastAddress            OptNum = 28 // Broadcast address
	OptPerformMaskDiscovery        OptNum = 29 // Perform mask discovery
	OptProvideMasktoOthers         OptNum = 30 // Provide mask to others
	OptPerformRouterDiscovery      OptNum = 31 // Perform router discovery
	OptRouterSolicitationAddress   OptNum = 32 // Router solicitation address
	OptStaticRoutingTable          OptNum = 33 // Static routing table
	OptTrailerEncapsulation        OptNum = 34 // Trailer encapsulation
	OptARPCacheTimeout             OptNum = 35 // ARP cache timeout
	OptEthernetEncapsulation       OptNum = 36 // Ethernet encapsulation
	OptDefaultTCPTimetoLive        OptNum = 37 // Default TCP time to live
	OptTCPKeepaliveInterval        OptNum = 38 // TCP keepalive interval
	OptTCPKeepaliveGarbage         OptNum = 39 // TCP keepalive garbage
	OptNISDomainName               OptNum = 40 // NIS domain name
	OptNISServerAddresses          OptNum = 41 // NIS server addresses
	OptNTPServersAddresses         OptNum = 42 // NTP servers addresses
	OptVendorSpecificInformation   OptNum = 43 // Vendor specific information
	OptNetBIOSNameServer           OptNum = 44 // NetBIOS name server
	OptNetBIOSDatagramDistribution OptNum = 45 // NetBIOS datagram distribution
	OptNetBIOSNodeType             OptNum = 46 // NetBIOS node type
	OptNetBIOSScope                OptNum = 47 // NetBIOS scope
	OptXWindowFontServer           OptNum = 48 // X window font server
	OptXWindowDisplayManager       OptNum = 49 // X window display manager
	OptRequestedIPaddress          OptNum = 50 // Requested IP address
	OptIPAddressLeaseTime          OptNum = 51 // IP address lease time
	OptOptionOverload              OptNum = 52 // Overload “sname” or “file”
	OptMessageType                 OptNum = 53 // DHCP message type.
	OptServerIdentification        OptNum = 54 // DHCP server identification
	OptParameterRequestList        OptNum = 55 // Parameter request list
	OptMessage                     OptNum = 56 // DHCP error message
	OptMaximumMessageSize          OptNum = 57 // DHCP maximum message size
	OptRenewTimeValue              OptNum = 58 // DHCP renewal (T1) time
	OptRebindingTimeValue          OptNum = 59 // DHCP rebinding (T2) time
	OptClientIdentifier            OptNum = 60 // Client identifier
	OptClientIdentifier1           OptNum = 61 // Client identifier(1)
)

const (
	OptClientFQDN OptNum = 81  // Client FQDN
	OptEnd        OptNum = 255 // end
)

// fixedLen returns the mandatory length of the option data for options with
// a defined size. It returns 0 for variable length options.
func (opt OptNum) fixedLen() int {
	switch opt {
	case OptSubnetMask, OptRequestedIPaddress, OptIPAddressLeaseTime,
		OptServerIdentification, OptRenewTimeValue, OptRebindingTimeValue:
		return 4
	case OptMessageType, OptOptionOverload:
		return 1
	}
	return 0
}

type Op byte

const (
	opUndefined Op = iota // undefined
	OpRequest             // request
	OpReply               // reply
)

type MessageType uint8

const (
	msg         MessageType = iota // undefined
	MsgDiscover                    // discover
	MsgOffer                       // offer
	MsgRequest                     // request
	MsgDecline                     // decline
	MsgAck                         // ack
	MsgNack                        // nak
	MsgRelease                     // release
	MsgInform                      // inform
)

type Flags uint16

// FlagBroadcast asks the server to broadcast its replies since the client
// cannot receive unicast datagrams before it holds an address.
const FlagBroadcast Flags = 0x8000

// Overload option bits.
const (
	overloadFile  = 1 << 0
	overloadSName = 1 << 1
)

// event is an input to the client state machine.
type event uint8

const (
	evNone           event = iota // none
	evReceived                    // received
	evRetransTimeout              // retrans-timeout
	evStateTimeout                // state-timeout
	evImmediateRetry              // immediate-retry
	evBroadcastReady              // broadcast-ready
	evBroadcastLost               // broadcast-lost
	evConflict                    // conflict
	evProbeUnique                 // probe-unique
	evProbeDuplicate              // probe-duplicate
)

// msgKind selects the message built and sent by the client. Each kind maps to
// one DHCP message type but differs in the options it carries.
type msgKind uint8

const (
	kindNone msgKind = iota
	// DISCOVER with parameter request list, FQDN and transmit options.
	kindDiscover
	// DISCOVER with message type only, used in simple mode.
	kindSimpleDiscover
	// REQUEST for an offered address, carries requested IP and server ID.
	kindRequestOffer
	// REQUEST to extend the held lease while renewing or rebinding.
	kindRequestExtend
	// DECLINE of a conflicting address, carries requested IP and server ID.
	kindDecline
)

func (k msgKind) messageType() MessageType {
	switch k {
	case kindDiscover, kindSimpleDiscover:
		return MsgDiscover
	case kindRequestOffer, kindRequestExtend:
		return MsgRequest
	case kindDecline:
		return MsgDecline
	}
	return msg
}
