package domain

// Recipe describes a package: its coordinates, option schema, requirement
// rules and packaging table.
type Recipe struct {
	Name        string
	Version     string
	User        string
	Channel     string
	Description string

	Schema       *Schema
	Requirements []RequirementRule
	PackageRules []PackageRule
}

// DefaultChannel returns the "user/channel" pair requirements inherit when they declare none.
func (r *Recipe) DefaultChannel() string {
	if r.User == "" || r.Channel == "" {
		return ""
	}
	return r.User + "/" + r.Channel
}

// Reference renders the recipe as "name/version@user/channel".
func (r *Recipe) Reference() string {
	return Requirement{Name: r.Name, Version: r.Version, Channel: r.DefaultChannel()}.Reference()
}

// PackageRule copies files matching Pattern from Src into Dst of the package.
type PackageRule struct {
	Pattern  string `json:"pattern" yaml:"pattern"`
	Src      string `json:"src,omitempty" yaml:"src,omitempty"`
	Dst      string `json:"dst" yaml:"dst"`
	KeepPath bool   `json:"keep_path" yaml:"keep_path"`
}

// DefaultPackageRules is the layout of a packaged native library:
// headers under include, libraries under lib, runtime DLLs under bin.
var DefaultPackageRules = []PackageRule{
	{Pattern: "*.h", Src: "include", Dst: "include", KeepPath: true},
	{Pattern: "*.hpp", Src: "include", Dst: "include", KeepPath: true},
	{Pattern: "*.ipp", Src: "include", Dst: "include", KeepPath: true},
	{Pattern: "*.lib", Dst: "lib"},
	{Pattern: "*.dll", Dst: "bin"},
	{Pattern: "*.dylib*", Dst: "lib"},
	{Pattern: "*.so", Dst: "lib"},
	{Pattern: "*.a", Dst: "lib"},
}
