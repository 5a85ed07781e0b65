package sidebar

// Nav is the navigation definition a controller renders.
type Nav struct {
	Logo       Icon   `json:"logo" yaml:"logo"`
	OpenIcon   Icon   `json:"openIcon" yaml:"openIcon"`
	CloseIcon  Icon   `json:"closeIcon" yaml:"closeIcon"`
	Items      []Item `json:"items" yaml:"items"`
	LogoutIcon Icon   `json:"logoutIcon" yaml:"logoutIcon"`
	LogoutText string `json:"logoutText" yaml:"logoutText"`
	LogoutHref string `json:"logoutHref" yaml:"logoutHref"`
}

// DefaultNav returns the admin panel navigation.
func DefaultNav() Nav {
	return Nav{
		Logo:      Icon{Src: "/svg/SenateNameLogo.svg", Alt: "Logo", Width: 200, Height: 200},
		CloseIcon: Icon{Src: "/svg/SidebarCloseIcon.svg", Alt: "Close Sidebar", Width: 24, Height: 24},
		OpenIcon:  Icon{Src: "/svg/SidebarOpenIcon.svg", Alt: "Open Sidebar", Width: 24, Height: 24},
		Items: []Item{
			{Icon: Icon{Src: "/svg/SidebarDashboardIcon.svg", Alt: "Home"}, Text: "Dashboard", Href: "/dashboard", Active: true},
			{Icon: Icon{Src: "/svg/SidebarDeviceManagementIcon.svg", Alt: "Profile"}, Text: "Device Management", Href: "/devices"},
			{Icon: Icon{Src: "/svg/SidebarUserManagementIcon.svg"}, Text: "User Management", Href: "/users"},
			{Icon: Icon{Src: "/svg/SidebarMyProfileIcon.svg", Alt: "Notifications"}, Text: "My Profile", Href: "/form"},
			{Icon: Icon{Src: "/svg/SidebarNotificationsIcon.svg", Alt: "Notifications"}, Text: "Notifications", Href: "/notifications"},
		},
		LogoutIcon: Icon{Src: "/svg/SidebarLogoutIcon.svg", Alt: "Logout Icon", Width: 40, Height: 40},
		LogoutText: "Logout",
		LogoutHref: "/login",
	}
}

// WithActive returns a copy of nav with only the item whose Href matches
// marked active. Unknown paths leave the flags untouched.
func (n Nav) WithActive(href string) Nav {
	found := false
	for _, item := range n.Items {
		if item.Href == href {
			found = true
			break
		}
	}
	out := n
	out.Items = append([]Item(nil), n.Items...)
	if !found {
		return out
	}
	for i := range out.Items {
		out.Items[i].Active = out.Items[i].Href == href
	}
	return out
}

// View is the render-ready projection of the whole sidebar.
type View struct {
	Expanded    bool       `json:"expanded"`
	Logo        IconView   `json:"logo"`
	LogoClass   string     `json:"logoClass"`
	ToggleIcon  IconView   `json:"toggleIcon"`
	ToggleLabel string     `json:"toggleLabel"`
	Items       []ItemView `json:"items"`
	Logout      LogoutView `json:"logout"`
	CSSVars     string     `json:"cssVars,omitempty"`
}

// LogoutView is the footer entry.
type LogoutView struct {
	Icon  IconView `json:"icon"`
	Text  string   `json:"text"`
	Href  string   `json:"href"`
	Class string   `json:"class"`
}

// View renders the controller's navigation against its current state.
func (c *Controller) View() View {
	expanded := c.expanded
	view := View{
		Expanded:  expanded,
		Logo:      c.nav.Logo.View(),
		LogoClass: "overflow-hidden transition-all w-0",
		Logout: LogoutView{
			Icon:  c.nav.LogoutIcon.View(),
			Text:  c.nav.LogoutText,
			Href:  c.nav.LogoutHref,
			Class: "flex justify-between items-center overflow-hidden transition-all w-0",
		},
		CSSVars: c.theme.Style(),
	}
	if expanded {
		view.LogoClass = "overflow-hidden transition-all w-32"
		view.ToggleIcon = c.nav.CloseIcon.View()
		view.Logout.Class = "flex justify-between items-center overflow-hidden transition-all w-52 ml-3"
	} else {
		view.ToggleIcon = c.nav.OpenIcon.View()
	}
	view.ToggleLabel = view.ToggleIcon.Alt

	state := c.State()
	view.Items = make([]ItemView, 0, len(c.nav.Items))
	for _, item := range c.nav.Items {
		view.Items = append(view.Items, NewBoundItem(state, item).View())
	}
	return view
}
