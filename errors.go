package dhcpc

//go:generate stringer -type=errGeneric -linecomment -output stringers.go

type errGeneric uint8

// Errors returned by the DHCPv4 client engine. None of them allocate.
const (
	_                  errGeneric = iota // non-initialized err
	ErrPacketDrop                        // packet dropped
	ErrShortFrame                        // short DHCP frame
	ErrNotBootReply                      // not a BOOTREPLY
	ErrBadHardware                       // unsupported hardware type or length
	ErrBadCookie                         // bad magic cookie
	ErrMissingEnd                        // missing end option
	ErrMalformedOption                   // malformed DHCP option
	ErrOptionNotAllowed                  // option not allowed in simple mode
	ErrMismatchXID                       // transaction ID mismatch
	ErrUnexpectedMessage                 // unexpected message type for state
	ErrRejectedLease                     // lease times rejected
	ErrInactive                          // client inactive
	ErrUnknownOption                     // option not configured
	ErrOptionLength                      // invalid option length
	ErrShortBuffer                       // buffer too short
	ErrLengthMismatch                    // built message length mismatch
)

func (err errGeneric) Error() string {
	return err.String()
}
