// Package detector maps ports to best-guess service names.
package detector

// serviceNames is a static table of IANA-registered assignments for ports
// commonly found open. The guess is based purely on the port number; the
// actual service behind a port may differ.
var serviceNames = map[uint16]string{
	20:    "ftp-data",
	21:    "ftp",
	22:    "ssh",
	23:    "telnet",
	25:    "smtp",
	53:    "domain",
	67:    "dhcps",
	69:    "tftp",
	80:    "http",
	110:   "pop3",
	111:   "rpcbind",
	123:   "ntp",
	135:   "msrpc",
	137:   "netbios-ns",
	139:   "netbios-ssn",
	143:   "imap",
	161:   "snmp",
	389:   "ldap",
	443:   "https",
	445:   "microsoft-ds",
	465:   "smtps",
	500:   "isakmp",
	514:   "syslog",
	554:   "rtsp",
	587:   "submission",
	631:   "ipp",
	636:   "ldaps",
	993:   "imaps",
	995:   "pop3s",
	1433:  "ms-sql-s",
	1723:  "pptp",
	2049:  "nfs",
	3306:  "mysql",
	3389:  "ms-wbt-server",
	5432:  "postgresql",
	5672:  "amqp",
	5900:  "vnc",
	6379:  "redis",
	8080:  "http-proxy",
	8443:  "https-alt",
	9092:  "kafka",
	9200:  "elasticsearch",
	11211: "memcached",
	27017: "mongodb",
}

// Unknown is returned for ports with no table entry.
const Unknown = "unknown"

// ServiceName returns the best-guess service name for a port. Pure lookup,
// no network activity.
func ServiceName(port uint16) string {
	if name, ok := serviceNames[port]; ok {
		return name
	}
	return Unknown
}
