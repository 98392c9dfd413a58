package arp

import (
	"errors"
	"time"
)

//go:generate stringer -type=Operation -linecomment -output stringers.go .

const (
	sizeHeader   = 8
	sizeHeaderv4 = sizeHeader + 6*2 + 4*2

	htypeEthernet = 1
)

// Address conflict detection timing. See RFC 5227 section 1.1.
const (
	ProbeWait        = 1 * time.Second
	ProbeNum         = 3
	ProbeMin         = 1 * time.Second
	ProbeMax         = 2 * time.Second
	AnnounceWait     = 2 * time.Second
	AnnounceNum      = 2
	AnnounceInterval = 2 * time.Second
	DefendInterval   = 10 * time.Second
)

var (
	errShortARP       = errors.New("packet too short to be ARP")
	errARPUnsupported = errors.New("ARP operation not supported")
	errBadHardware    = errors.New("bad ARP hardware")
	errBadProtocol    = errors.New("bad ARP protocol")
)

// Operation represents the type of ARP packet, either request or reply/response.
type Operation uint8

const (
	OpRequest Operation = 1 // request
	OpReply   Operation = 2 // reply
)
