package main

import (
	. "github.com/saylorsolutions/modmake"
)

const (
	xcryptVersion = "0.1.0"
	chatVersion   = "0.1.0"
)

func main() {
	b := NewBuild()
	b.Generate().DependsOnRunner("tidy", "", Go().ModTidy())

	xcrypt := NewAppBuild("xcrypt", "cmd/xcrypt", xcryptVersion)
	xcrypt.Build(func(gb *GoBuild) {
		gb.
			StripDebugSymbols().
			CgoEnabled(false)
	})
	xcrypt.Variant("windows", "amd64")
	xcrypt.Variant("linux", "amd64")
	xcrypt.Variant("linux", "arm64")
	xcrypt.Variant("darwin", "amd64")
	xcrypt.Variant("darwin", "arm64")
	b.ImportApp(xcrypt)

	chat := NewAppBuild("chat", "cmd/chat", chatVersion)
	chat.Build(func(gb *GoBuild) {
		gb.
			StripDebugSymbols().
			CgoEnabled(false)
	})
	chat.Variant("linux", "amd64")
	chat.Variant("linux", "arm64")
	chat.Variant("darwin", "amd64")
	chat.Variant("darwin", "arm64")
	b.ImportApp(chat)

	b.Execute()
}
