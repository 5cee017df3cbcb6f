package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/petnolja/petcli/internal/api"
	"github.com/petnolja/petcli/internal/catalog"
	"github.com/petnolja/petcli/internal/display"
	"github.com/petnolja/petcli/internal/filter"
)

const (
	minTUIWidth  = 92
	minTUIHeight = 24
)

var (
	tuiHeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	tuiMetaStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	tuiHintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	tuiValueStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	tuiSoldOutStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	tuiItemStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	tuiMutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	tuiSectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
)

const saleGroup = "SALE"

type tuiLoadConfig struct {
	ctx             context.Context
	client          *api.Client
	initialCriteria filter.Criteria
}

type tuiDataLoadedMsg struct {
	sourceLabel string
	allItems    []api.Item
}

type tuiDataLoadErrMsg struct {
	err error
}

type tuiFocus int

const (
	tuiFocusList tuiFocus = iota
	tuiFocusDetail
)

type tuiGroupItem struct {
	key     string
	name    string
	count   int
	ordinal int
}

func (g tuiGroupItem) FilterValue() string { return strings.ToLower(g.name) }
func (g tuiGroupItem) Title() string       { return fmt.Sprintf("%d. %s", g.ordinal, g.name) }
func (g tuiGroupItem) Description() string {
	return fmt.Sprintf("Section header • %d items", g.count)
}

type tuiShopItem struct {
	item        api.Item
	group       string
	title       string
	description string
	filterValue string
}

func (d tuiShopItem) FilterValue() string { return d.filterValue }
func (d tuiShopItem) Title() string       { return d.title }
func (d tuiShopItem) Description() string { return d.description }

type itemsTUIModel struct {
	loading  bool
	spinner  spinner.Model
	loadCmd  tea.Cmd
	fatalErr error

	sourceLabel string
	allItems    []api.Item

	criteria        filter.Criteria
	initialCriteria filter.Criteria

	sortChoices     []string
	sortIndex       int
	categoryChoices []string
	categoryIndex   int
	statusChoices   []string
	statusIndex     int
	limitChoices    []int
	limitIndex      int

	list   list.Model
	detail viewport.Model

	focus      tuiFocus
	showHelp   bool
	selectedID string

	groupStarts  []int
	visibleItems int

	width, height   int
	bodyHeight      int
	listPaneWidth   int
	detailPaneWidth int
	tooSmall        bool
}

func newLoadingItemsTUIModel(cfg tuiLoadConfig) itemsTUIModel {
	delegate := list.NewDefaultDelegate()
	delegate.SetHeight(2)
	delegate.SetSpacing(1)

	lst := list.New([]list.Item{}, delegate, 0, 0)
	lst.Title = "Items"
	lst.SetStatusBarItemName("item", "items")
	lst.SetShowStatusBar(true)
	lst.SetFilteringEnabled(true)
	lst.SetShowHelp(false)
	lst.SetShowPagination(true)
	lst.DisableQuitKeybindings()

	detail := viewport.New(0, 0)
	detail.KeyMap.PageDown.SetKeys("f", "pgdown")
	detail.KeyMap.PageUp.SetKeys("b", "pgup")
	detail.KeyMap.HalfPageDown.SetKeys("d")
	detail.KeyMap.HalfPageUp.SetKeys("u")

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))

	return itemsTUIModel{
		loading:         true,
		spinner:         spin,
		loadCmd:         loadTUIDataCmd(cfg),
		initialCriteria: cfg.initialCriteria,
		criteria:        cfg.initialCriteria,
		list:            lst,
		detail:          detail,
		focus:           tuiFocusList,
	}
}

func loadTUIDataCmd(cfg tuiLoadConfig) tea.Cmd {
	return func() tea.Msg {
		allItems, sourceLabel, err := loadTUIData(cfg.ctx, cfg.client)
		if err != nil {
			return tuiDataLoadErrMsg{err: err}
		}
		return tuiDataLoadedMsg{
			sourceLabel: sourceLabel,
			allItems:    allItems,
		}
	}
}

func (m itemsTUIModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd)
}

func (m itemsTUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tuiDataLoadedMsg:
		m.loading = false
		m.sourceLabel = msg.sourceLabel
		m.allItems = msg.allItems
		m.initialCriteria = canonicalizeTUICriteria(m.initialCriteria)
		m.criteria = m.initialCriteria
		m.initializeInlineChoices()
		m.applyCurrentFilters(true)
		m.resize()
		return m, nil

	case tuiDataLoadErrMsg:
		m.loading = false
		m.fatalErr = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	keyMsg, isKey := msg.(tea.KeyMsg)
	if isKey {
		if keyMsg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.loading {
			if keyMsg.String() == "q" {
				return m, tea.Quit
			}
			return m, nil
		}
	}

	if m.loading {
		return m, nil
	}

	if isKey {
		filtering := m.list.FilterState() == list.Filtering
		key := keyMsg.String()

		if !filtering {
			switch key {
			case "q":
				return m, tea.Quit
			case "tab":
				if m.focus == tuiFocusList {
					m.focus = tuiFocusDetail
				} else {
					m.focus = tuiFocusList
				}
				return m, nil
			case "esc":
				if m.focus == tuiFocusDetail {
					m.focus = tuiFocusList
					return m, nil
				}
			case "?":
				m.showHelp = !m.showHelp
				m.resize()
				return m, nil
			case "s":
				m.sortIndex = cycleIndex(m.sortIndex, len(m.sortChoices))
				m.criteria.Sort = m.sortChoices[m.sortIndex]
				m.applyCurrentFilters(false)
				return m, nil
			case "i":
				m.criteria.InStockOnly = !m.criteria.InStockOnly
				m.applyCurrentFilters(false)
				return m, nil
			case "c":
				m.categoryIndex = cycleIndex(m.categoryIndex, len(m.categoryChoices))
				m.criteria.Categories = categorySelection(m.categoryChoices[m.categoryIndex])
				m.applyCurrentFilters(false)
				return m, nil
			case "a":
				m.statusIndex = cycleIndex(m.statusIndex, len(m.statusChoices))
				m.criteria.SellStatus = m.statusChoices[m.statusIndex]
				m.applyCurrentFilters(false)
				return m, nil
			case "l":
				m.limitIndex = cycleIndex(m.limitIndex, len(m.limitChoices))
				m.criteria.Limit = m.limitChoices[m.limitIndex]
				m.applyCurrentFilters(false)
				return m, nil
			case "r":
				m.criteria = m.initialCriteria
				m.syncChoiceIndexesFromCriteria()
				m.applyCurrentFilters(false)
				return m, nil
			case "]", "[":
				if m.list.IsFiltered() {
					return m, m.list.NewStatusMessage("Clear fuzzy filter before section jumps.")
				}
				delta := 1
				if key == "[" {
					delta = -1
				}
				m.jumpSection(delta)
				return m, nil
			}

			if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
				if m.list.IsFiltered() {
					return m, m.list.NewStatusMessage("Clear fuzzy filter before section jumps.")
				}
				m.jumpToSection(int(key[0] - '1'))
				return m, nil
			}

			if m.focus == tuiFocusDetail {
				var cmd tea.Cmd
				m.detail, cmd = m.detail.Update(msg)
				return m, cmd
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.refreshDetail(false)
	return m, cmd
}

func (m itemsTUIModel) View() string {
	if m.loading {
		return m.loadingView()
	}
	if m.width == 0 || m.height == 0 {
		return tuiMetaStyle.Render("Loading interface...")
	}
	if m.tooSmall {
		return lipgloss.NewStyle().
			Padding(1, 2).
			Render(
				fmt.Sprintf(
					"Terminal too small (%dx%d).\nResize to at least %dx%d for the two-pane item browser.",
					m.width, m.height, minTUIWidth, minTUIHeight,
				),
			)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.headerView(),
		m.bodyView(),
		m.footerView(),
	)
}

func (m itemsTUIModel) loadingView() string {
	width := m.width
	if width == 0 {
		width = 80
	}

	lines := []string{
		tuiHeaderStyle.Render("petcli tui"),
		tuiMetaStyle.Render("Preparing interactive interface..."),
		"",
		fmt.Sprintf("%s Fetching the shop catalog", m.spinner.View()),
		tuiHintStyle.Render("Tip: press q to cancel."),
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
}

func (m *itemsTUIModel) resize() {
	if m.width == 0 || m.height == 0 || m.loading {
		return
	}

	m.tooSmall = m.width < minTUIWidth || m.height < minTUIHeight
	if m.tooSmall {
		return
	}

	headerH := 3
	footerH := 2
	if m.showHelp {
		footerH = 6
	}
	m.bodyHeight = maxInt(8, m.height-headerH-footerH-1)

	listWidth := maxInt(40, int(float64(m.width)*0.43))
	if listWidth > m.width-42 {
		listWidth = m.width / 2
	}
	detailWidth := m.width - listWidth - 1
	if detailWidth < 36 {
		detailWidth = 36
		listWidth = m.width - detailWidth - 1
	}

	m.listPaneWidth = listWidth
	m.detailPaneWidth = detailWidth

	panelInnerHeight := maxInt(6, m.bodyHeight-2)
	m.list.SetSize(maxInt(24, listWidth-4), panelInnerHeight)
	m.detail.Width = maxInt(24, detailWidth-4)
	m.detail.Height = panelInnerHeight
	m.refreshDetail(false)
}

func (m itemsTUIModel) headerView() string {
	focus := "list"
	if m.focus == tuiFocusDetail {
		focus = "detail"
	}

	top := fmt.Sprintf("petcli tui  |  %s", m.sourceLabel)
	bottom := fmt.Sprintf(
		"items: %d visible / %d total  |  filters: %s  |  focus: %s",
		m.visibleItems, len(m.allItems), m.activeFilterSummary(), focus,
	)

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(tuiHeaderStyle.Render(top) + "\n" + tuiMetaStyle.Render(bottom))
}

func (m itemsTUIModel) bodyView() string {
	listBorder := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("241")).
		Padding(0, 1)
	detailBorder := listBorder

	if m.focus == tuiFocusList {
		listBorder = listBorder.BorderForeground(lipgloss.Color("86"))
	} else {
		detailBorder = detailBorder.BorderForeground(lipgloss.Color("86"))
	}

	left := listBorder.
		Width(m.listPaneWidth).
		Height(m.bodyHeight).
		Render(m.list.View())
	right := detailBorder.
		Width(m.detailPaneWidth).
		Height(m.bodyHeight).
		Render(m.detail.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

func (m itemsTUIModel) footerView() string {
	base := "Tab switch pane • / fuzzy filter • c category • i in stock • a sell status • s sort • l limit • r reset • [/] section • q quit"
	if m.focus == tuiFocusDetail {
		base = "Detail: j/k or ↑/↓ scroll • u/d half-page • b/f page • esc list • ? help • q quit"
	}

	if !m.showHelp {
		return lipgloss.NewStyle().Padding(0, 1).Render(tuiHintStyle.Render(base))
	}

	lines := []string{
		"Key Help",
		"list pane: ↑/↓ or j/k move • / fuzzy filter • c category • i in stock • a sell status • s sort • l limit",
		"group jumps: ] next section • [ previous section • 1..9 jump to numbered section header",
		"global: tab switch pane • esc list • r reset inline options • ? toggle help • q quit • ctrl+c force quit",
	}
	return lipgloss.NewStyle().
		Padding(0, 1).
		Render(tuiHintStyle.Render(strings.Join(lines, "\n")))
}

func (m *itemsTUIModel) initializeInlineChoices() {
	m.sortChoices = []string{"", filter.SortPriceAsc, filter.SortPriceDesc, filter.SortName, filter.SortNewest}
	m.categoryChoices = buildCategoryChoices(m.allItems, currentCategory(m.criteria))
	m.statusChoices = []string{"", api.SellStatusOnSale, api.SellStatusSoldOut, api.SellStatusStopped}
	m.limitChoices = buildLimitChoices(m.criteria.Limit)

	m.syncChoiceIndexesFromCriteria()
}

func (m *itemsTUIModel) syncChoiceIndexesFromCriteria() {
	m.sortIndex = maxInt(0, indexOfString(m.sortChoices, m.criteria.Sort))
	m.criteria.Sort = m.sortChoices[m.sortIndex]

	m.categoryIndex = maxInt(0, indexOfString(m.categoryChoices, currentCategory(m.criteria)))
	m.criteria.Categories = categorySelection(m.categoryChoices[m.categoryIndex])

	m.statusIndex = maxInt(0, indexOfString(m.statusChoices, m.criteria.SellStatus))
	m.criteria.SellStatus = m.statusChoices[m.statusIndex]

	m.limitIndex = maxInt(0, indexOfInt(m.limitChoices, m.criteria.Limit))
	m.criteria.Limit = m.limitChoices[m.limitIndex]
}

func cycleIndex(current, n int) int {
	if n == 0 {
		return 0
	}
	return (current + 1) % n
}

func (m itemsTUIModel) activeFilterSummary() string {
	parts := []string{}
	if cat := currentCategory(m.criteria); cat != "" {
		parts = append(parts, "category:"+cat)
	}
	if m.criteria.InStockOnly {
		parts = append(parts, "in-stock")
	}
	if m.criteria.SellStatus != "" {
		parts = append(parts, "status:"+m.criteria.SellStatus)
	}
	if m.criteria.PriceMin != nil {
		parts = append(parts, "min:"+m.criteria.PriceMin.String())
	}
	if m.criteria.PriceMax != nil {
		parts = append(parts, "max:"+m.criteria.PriceMax.String())
	}
	if m.criteria.Query != "" {
		parts = append(parts, "query:"+m.criteria.Query)
	}
	if m.criteria.Sort != "" {
		parts = append(parts, "sort:"+m.criteria.Sort)
	}
	if m.criteria.Limit > 0 {
		parts = append(parts, fmt.Sprintf("limit:%d", m.criteria.Limit))
	}
	if fuzzy := strings.TrimSpace(m.list.FilterValue()); fuzzy != "" {
		parts = append(parts, "fuzzy:"+fuzzy)
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

func (m *itemsTUIModel) applyCurrentFilters(resetSelection bool) {
	currentID := m.selectedID
	filtered := filter.Apply(m.allItems, m.criteria)
	m.visibleItems = len(filtered)

	items, starts := buildGroupedListItems(filtered)
	m.groupStarts = starts

	m.list.Title = fmt.Sprintf("Items • %d visible", m.visibleItems)
	m.list.SetItems(items)

	target := -1
	if !resetSelection && currentID != "" {
		target = findItemIndexByID(items, currentID)
	}
	if target < 0 {
		target = firstShopItemIndexFrom(items, 0)
	}
	if target < 0 && len(items) > 0 {
		target = 0
	}
	if target >= 0 {
		m.list.Select(target)
	}

	m.refreshDetail(true)
}

func (m *itemsTUIModel) refreshDetail(resetScroll bool) {
	var content string
	nextID := ""

	if selected := m.list.SelectedItem(); selected != nil {
		switch item := selected.(type) {
		case tuiShopItem:
			content = renderItemDetailContent(item.item, m.detail.Width)
			nextID = stableIDForItem(item)
		case tuiGroupItem:
			content = m.renderGroupDetail(item)
			nextID = stableIDForItem(item)
		}
	}
	if content == "" {
		content = "No items match the current inline filters.\n\nTry pressing r to reset filters."
	}

	if resetScroll || nextID != m.selectedID {
		m.detail.GotoTop()
	}
	m.selectedID = nextID
	m.detail.SetContent(content)
}

func (m itemsTUIModel) renderGroupDetail(group tuiGroupItem) string {
	lines := []string{
		tuiSectionStyle.Render(fmt.Sprintf("Section %d: %s", group.ordinal, group.name)),
		tuiMetaStyle.Render(fmt.Sprintf("%d items in this section", group.count)),
		"",
		tuiMetaStyle.Render("Jump keys:"),
		"- `]` next section, `[` previous section",
		"- `1..9` jump directly to section number",
	}

	var preview []string
	for _, li := range m.list.Items() {
		if it, ok := li.(tuiShopItem); ok && it.group == group.key {
			preview = append(preview, it.title)
			if len(preview) >= 5 {
				break
			}
		}
	}
	if len(preview) > 0 {
		lines = append(lines, "", tuiMetaStyle.Render("Preview:"))
		for _, title := range preview {
			lines = append(lines, "• "+title)
		}
	}
	return strings.Join(lines, "\n")
}

func (m *itemsTUIModel) jumpToSection(index int) {
	if index < 0 || index >= len(m.groupStarts) {
		return
	}

	target := firstShopItemIndexFrom(m.list.Items(), m.groupStarts[index])
	if target < 0 {
		target = m.groupStarts[index]
	}
	m.list.Select(target)
	m.refreshDetail(true)
}

func (m *itemsTUIModel) jumpSection(delta int) {
	if len(m.groupStarts) == 0 {
		return
	}
	cursor := m.list.GlobalIndex()
	current := 0
	for i, start := range m.groupStarts {
		if start > cursor {
			break
		}
		current = i
	}
	next := (current + delta + len(m.groupStarts)) % len(m.groupStarts)
	m.jumpToSection(next)
}

// buildGroupedListItems interleaves section headers with items, one section
// per primary category. The sale section comes first, then larger sections.
func buildGroupedListItems(items []api.Item) (out []list.Item, starts []int) {
	if len(items) == 0 {
		return nil, nil
	}

	groups := map[string][]api.Item{}
	for _, item := range items {
		key := itemGroupKey(item)
		groups[key] = append(groups[key], item)
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if (keys[i] == saleGroup) != (keys[j] == saleGroup) {
			return keys[i] == saleGroup
		}
		if len(groups[keys[i]]) != len(groups[keys[j]]) {
			return len(groups[keys[i]]) > len(groups[keys[j]])
		}
		return keys[i] < keys[j]
	})

	out = make([]list.Item, 0, len(items)+len(keys))
	starts = make([]int, 0, len(keys))
	for idx, key := range keys {
		starts = append(starts, len(out))
		out = append(out, tuiGroupItem{
			key:     key,
			name:    groupDisplayName(key),
			count:   len(groups[key]),
			ordinal: idx + 1,
		})
		for _, item := range groups[key] {
			out = append(out, buildTUIShopItem(item, key))
		}
	}
	return out, starts
}

// itemGroupKey picks the canonical category an item is listed under: SALE when
// present, else its first product category, else its first category at all.
func itemGroupKey(item api.Item) string {
	var first, product string
	for _, label := range filter.ItemCategories(item) {
		canonical := catalog.Normalize(label)
		if canonical == "" {
			continue
		}
		if canonical == saleGroup {
			return saleGroup
		}
		if first == "" {
			first = canonical
		}
		if opt, ok := catalog.Lookup(canonical); ok && opt.Group == catalog.GroupProduct && product == "" {
			product = canonical
		}
	}
	if product != "" {
		return product
	}
	if first != "" {
		return first
	}
	return "OTHER"
}

func groupDisplayName(key string) string {
	if opt, ok := catalog.Lookup(key); ok {
		return fmt.Sprintf("%s (%s)", opt.Label, key)
	}
	return humanizeLabel(key)
}

func itemTitle(item api.Item) string {
	if name := filter.CleanText(item.Name); name != "" {
		return name
	}
	if brand := filter.CleanText(item.Brand); brand != "" {
		return brand
	}
	if id := item.ID.String(); id != "" {
		return "Item " + id
	}
	return "Untitled item"
}

func buildTUIShopItem(item api.Item, group string) tuiShopItem {
	title := itemTitle(item)
	price := display.FormatPrice(item.Price)
	if price == "" {
		price = "No price"
	}

	descParts := []string{price}
	if item.SellStatus != "" && item.SellStatus != api.SellStatusOnSale {
		descParts = append(descParts, item.SellStatus)
	}
	if stock := item.Stock.String(); stock != "" {
		descParts = append(descParts, "stock "+stock)
	}
	if brand := filter.CleanText(item.Brand); brand != "" && brand != title {
		descParts = append(descParts, brand)
	}

	filterTokens := []string{
		title,
		filter.CleanText(item.Description),
		filter.CleanText(item.Brand),
		strings.Join(filter.ItemCategories(item), " "),
		group,
	}

	return tuiShopItem{
		item:        item,
		group:       group,
		title:       title,
		description: strings.Join(descParts, "  •  "),
		filterValue: strings.ToLower(strings.Join(filterTokens, " ")),
	}
}

func renderItemDetailContent(item api.Item, width int) string {
	maxWidth := maxInt(24, width)

	price := display.FormatPrice(item.Price)
	if price == "" {
		price = "No price provided"
	}
	desc := filter.CleanText(item.Description)
	if desc == "" {
		desc = "No description provided."
	}

	lines := []string{
		tuiItemStyle.Render(wrapText(itemTitle(item), maxWidth)),
	}

	metaBits := []string{}
	switch item.SellStatus {
	case api.SellStatusSoldOut:
		metaBits = append(metaBits, tuiSoldOutStyle.Render("SOLD OUT"))
	case api.SellStatusStopped:
		metaBits = append(metaBits, tuiSoldOutStyle.Render("STOPPED"))
	}
	if labels := filter.ItemCategories(item); len(labels) > 0 {
		metaBits = append(metaBits, "categories: "+strings.Join(labels, ", "))
	}
	if len(metaBits) > 0 {
		lines = append(lines, tuiMetaStyle.Render(wrapText(strings.Join(metaBits, "  |  "), maxWidth)))
	}

	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("%s %s", tuiMetaStyle.Render("Price:"), tuiValueStyle.Render(price)))
	if stock := item.Stock.String(); stock != "" {
		lines = append(lines, fmt.Sprintf("%s %s", tuiMetaStyle.Render("Stock:"), stock))
	}
	lines = append(lines, "", tuiMetaStyle.Render("Description:"), wrapText(desc, maxWidth), "")

	if brand := filter.CleanText(item.Brand); brand != "" {
		lines = append(lines, fmt.Sprintf("%s %s", tuiMetaStyle.Render("Brand:"), brand))
	}
	if id := item.ID.String(); id != "" {
		lines = append(lines, fmt.Sprintf("%s %s", tuiMetaStyle.Render("ID:"), id))
	}
	if created := strings.TrimSpace(item.CreatedAt); created != "" {
		lines = append(lines, fmt.Sprintf("%s %s", tuiMetaStyle.Render("Added:"), created))
	}
	if imageURL := strings.TrimSpace(item.ImageURL); imageURL != "" {
		lines = append(lines, "", tuiMutedStyle.Render("Image URL:"), tuiMutedStyle.Render(wrapText(imageURL, maxWidth)))
	}

	return strings.Join(lines, "\n")
}

func wrapText(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	if width < 12 {
		width = 12
	}

	line := words[0]
	lines := make([]string, 0, len(words)/6+1)
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

func canonicalizeTUICriteria(c filter.Criteria) filter.Criteria {
	c.Sort = filter.CanonicalSortMode(c.Sort)
	c.Categories = categorySelection(currentCategory(c))
	c.Query = strings.TrimSpace(c.Query)
	return c
}

// currentCategory is the canonical form of the first selected category.
// The inline picker cycles one category at a time.
func currentCategory(c filter.Criteria) string {
	for _, raw := range c.Categories {
		if canonical := catalog.Normalize(raw); canonical != "" {
			return canonical
		}
	}
	return ""
}

func categorySelection(canonical string) []string {
	if canonical == "" {
		return nil
	}
	return []string{canonical}
}

func buildCategoryChoices(items []api.Item, current string) []string {
	counts := filter.Categories(items)

	values := make([]string, 0, len(counts)+1)
	for value := range counts {
		values = append(values, value)
	}
	if current != "" {
		if _, ok := counts[current]; !ok {
			values = append(values, current)
		}
	}
	sort.Slice(values, func(i, j int) bool {
		if counts[values[i]] != counts[values[j]] {
			return counts[values[i]] > counts[values[j]]
		}
		return values[i] < values[j]
	})
	return append([]string{""}, values...)
}

func buildLimitChoices(current int) []int {
	values := []int{0, 10, 25, 50, 100}
	if current > 0 && indexOfInt(values, current) < 0 {
		values = append(values, current)
		sort.Ints(values)
	}
	return values
}

func indexOfString(values []string, target string) int {
	for i, value := range values {
		if value == target {
			return i
		}
	}
	return -1
}

func indexOfInt(values []int, target int) int {
	for i, value := range values {
		if value == target {
			return i
		}
	}
	return -1
}

func findItemIndexByID(items []list.Item, stableID string) int {
	for i, item := range items {
		if stableIDForItem(item) == stableID {
			return i
		}
	}
	return -1
}

func firstShopItemIndexFrom(items []list.Item, start int) int {
	for i := start; i < len(items); i++ {
		if _, ok := items[i].(tuiShopItem); ok {
			return i
		}
	}
	return -1
}

func stableIDForItem(item list.Item) string {
	switch value := item.(type) {
	case tuiShopItem:
		if id := value.item.ID.String(); id != "" {
			return "item:" + id
		}
		return "item:title:" + strings.ToLower(value.title)
	case tuiGroupItem:
		return "group:" + strings.ToLower(value.key)
	default:
		return ""
	}
}

func humanizeLabel(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "Other"
	}
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	words := strings.Fields(strings.ToLower(s))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
