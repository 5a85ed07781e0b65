package sidebar

// Item describes one navigation entry.
type Item struct {
	Icon   Icon   `json:"icon" yaml:"icon"`
	Text   string `json:"text" yaml:"text"`
	Href   string `json:"href,omitempty" yaml:"href"`
	Active bool   `json:"active,omitempty" yaml:"active"`
	Alert  bool   `json:"alert,omitempty" yaml:"alert"`
}

// BoundItem is an item attached to a controller state.
type BoundItem struct {
	state State
	item  Item
}

// NewBoundItem binds item to state. A nil state is a composition error and
// panics with ErrOutsideController.
func NewBoundItem(state State, item Item) BoundItem {
	if state == nil {
		panic(ErrOutsideController)
	}
	return BoundItem{state: state, item: item}
}

// Item returns the bound item props.
func (b BoundItem) Item() Item {
	return b.item
}

// View projects the item against the current expanded flag.
func (b BoundItem) View() ItemView {
	var theme Theme
	if themed, ok := b.state.(interface{ theme() Theme }); ok {
		theme = themed.theme()
	}
	return ProjectItem(b.item, b.state.Expanded(), theme)
}

// Class strings follow the utility classes used by the admin stylesheet.
const (
	itemBaseClass      = "relative flex items-center py-2 px-3 my-1 font-medium cursor-pointer transition-colors group text-base leading-5"
	itemActiveClass    = "bg-gradient-to-tr from-indigo-200 to-indigo-100 text-indigo-800"
	itemInactiveClass  = "hover:bg-indigo-50 text-gray-600"
	labelExpandedClass = "overflow-hidden transition-all w-52 ml-3"
	labelCollapsed     = "overflow-hidden transition-all w-0"
	alertBaseClass     = "absolute right-2 w-2 h-2 rounded bg-indigo-400"
	tooltipClass       = "absolute left-full rounded-md px-2 py-1 ml-6 bg-indigo-100 text-indigo-800 text-sm invisible opacity-20 -translate-x-3 transition-all group-hover:visible group-hover:opacity-100 group-hover:translate-x-0"
)

// ItemView is the render-ready projection of an item.
type ItemView struct {
	Text       string   `json:"text"`
	Href       string   `json:"href,omitempty"`
	Icon       IconView `json:"icon"`
	Active     bool     `json:"active"`
	Class      string   `json:"class"`
	LabelClass string   `json:"labelClass"`
	// Collapsed is true when the label has zero width.
	Collapsed bool `json:"collapsed"`
	// Tooltip carries the hover label shown right of the icon while
	// collapsed. Empty when expanded.
	Tooltip      string `json:"tooltip,omitempty"`
	TooltipClass string `json:"tooltipClass,omitempty"`
	Alert        bool   `json:"alert"`
	AlertClass   string `json:"alertClass,omitempty"`
}

// ProjectItem computes the view of item for the given expanded flag. It is a
// pure function of its arguments.
func ProjectItem(item Item, expanded bool, theme Theme) ItemView {
	view := ItemView{
		Text:   item.Text,
		Href:   item.Href,
		Icon:   item.Icon.View(),
		Active: item.Active,
		Alert:  item.Alert,
	}

	stateClass := theme.class(classItemInactive, itemInactiveClass)
	if item.Active {
		stateClass = theme.class(classItemActive, itemActiveClass)
	}
	view.Class = itemBaseClass + " " + stateClass

	if expanded {
		view.LabelClass = labelExpandedClass
	} else {
		view.LabelClass = labelCollapsed
		view.Collapsed = true
		view.Tooltip = item.Text
		view.TooltipClass = theme.class(classTooltip, tooltipClass)
	}

	if item.Alert {
		view.AlertClass = alertBaseClass
		if !expanded {
			view.AlertClass += " top-2"
		}
	}
	return view
}
