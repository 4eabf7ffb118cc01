package headers

var tokenChar [256]bool

func init() {
	const extra = "!#$%&'*+-.^_`|~"
	for c := 'a'; c <= 'z'; c++ {
		tokenChar[c] = true
	}
	for c := 'A'; c <= 'Z'; c++ {
		tokenChar[c] = true
	}
	for c := '0'; c <= '9'; c++ {
		tokenChar[c] = true
	}
	for _, c := range extra {
		tokenChar[c] = true
	}
}

func isTokenChar(c byte) bool {
	return tokenChar[c]
}

func isOWS(c byte) bool {
	return c == ' ' || c == '\t'
}

func trimOWS(b []byte) []byte {
	i := 0
	for i < len(b) && isOWS(b[i]) {
		i++
	}
	j := len(b)
	for j > i && isOWS(b[j-1]) {
		j--
	}
	return b[i:j]
}
