package internal

import (
	"net"

	"github.com/sqlc-dev/pqtype"
)

var loopbackIpNet = net.IPNet{IP: net.IPv4(127, 0, 0, 1).To4(), Mask: net.CIDRMask(32, 32)}

// ServerIpNet returns the first IPv4 address of an interface that is up
// and not a loopback. Hosts without one get 127.0.0.1/32.
func ServerIpNet() (net.IPNet, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return net.IPNet{}, err
	}

	for _, iface := range ifaces {
		// If the flag is down
		if iface.Flags&net.FlagUp == 0 {
			continue
		}

		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			return net.IPNet{}, err
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}

			if ip4 := ipnet.IP.To4(); ip4 != nil && !ip4.IsLoopback() {
				return net.IPNet{IP: ip4, Mask: net.CIDRMask(32, 32)}, nil
			}
		}
	}

	return loopbackIpNet, nil
}

// ServerInet is ServerIpNet in the form the stats tables key on.
func ServerInet() (pqtype.Inet, error) {
	ipnet, err := ServerIpNet()
	if err != nil {
		return pqtype.Inet{}, err
	}
	return pqtype.Inet{IPNet: ipnet, Valid: true}, nil
}
