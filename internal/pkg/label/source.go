package label

import "github.com/assetlabel/inventory/internal/infra/storage"

// LogoSource is either LogoPresent or LogoAbsent.
type LogoSource interface{ isLogo() }

type LogoPresent struct{ Path string }

type LogoAbsent struct{}

func (LogoPresent) isLogo() {}
func (LogoAbsent) isLogo()  {}

// ResolveLogo returns LogoPresent only for an existing, non-empty file.
func ResolveLogo(path string) LogoSource {
	if path != "" && storage.Exists(path) {
		return LogoPresent{Path: path}
	}
	return LogoAbsent{}
}

// QRSource is either QRPresent or QRMissing.
type QRSource interface{ isQR() }

type QRPresent struct{ Path string }

type QRMissing struct{}

func (QRPresent) isQR() {}
func (QRMissing) isQR() {}

func ResolveQR(path string) QRSource {
	if path != "" && storage.Exists(path) {
		return QRPresent{Path: path}
	}
	return QRMissing{}
}
