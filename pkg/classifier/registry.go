// Package classifier раскладывает найденные .ba2 архивы по секциям Custom.ini
// и рендерит секции в строки конфигурации.
//
// Registry - статическая форма секций (имя, известные архивы, префикс).
// Найденные архивы (matched) - состояние одного прогона, поэтому каждый прогон
// работает со своей копией реестра (Clone) или явно очищает её (Reset).
package classifier

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultPlaceLast - архив, который всегда ставится в конец списка неизвестных.
const DefaultPlaceLast = "HUDModLoader.ba2"

// DefaultBucket - секция, куда попадают все архивы, не найденные в других списках.
const DefaultBucket = "sResourceArchive2List"

// Definition - описание секции для построения Registry.
type Definition struct {
	Name     string   // Ключ в ini (например, "sResourceStartUpArchiveList")
	Known    []string // Известные архивы, порядок значим
	Defaults []string // Значения, которые всегда идут первыми
}

// Bucket - секция реестра с найденными в текущем прогоне архивами.
type Bucket struct {
	Name     string
	Known    []string
	Defaults []string

	known   map[string]struct{}
	matched map[string]struct{}
}

func newBucket(def Definition) (*Bucket, error) {
	name := strings.TrimSpace(def.Name)
	if name == "" {
		return nil, fmt.Errorf("bucket name is required")
	}

	known := make(map[string]struct{}, len(def.Known))
	for _, member := range def.Known {
		if _, dup := known[member]; dup {
			return nil, fmt.Errorf("bucket %s: duplicate known member %q", name, member)
		}
		known[member] = struct{}{}
	}

	return &Bucket{
		Name:     name,
		Known:    append([]string(nil), def.Known...),
		Defaults: append([]string(nil), def.Defaults...),
		known:    known,
		matched:  make(map[string]struct{}),
	}, nil
}

// IsKnown сообщает, объявлен ли архив в списке этой секции.
func (b *Bucket) IsKnown(name string) bool {
	_, ok := b.known[name]
	return ok
}

// Has сообщает, найден ли архив в этой секции в текущем прогоне.
func (b *Bucket) Has(name string) bool {
	_, ok := b.matched[name]
	return ok
}

// Count возвращает количество найденных архивов.
func (b *Bucket) Count() int {
	return len(b.matched)
}

// Matched возвращает найденные архивы в лексикографическом порядке.
func (b *Bucket) Matched() []string {
	out := make([]string, 0, len(b.matched))
	for name := range b.matched {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (b *Bucket) add(name string) {
	b.matched[name] = struct{}{}
}

func (b *Bucket) reset() {
	b.matched = make(map[string]struct{})
}

// Registry - упорядоченный набор секций с одной секцией по умолчанию.
//
// Не thread-safe: один экземпляр на один прогон.
type Registry struct {
	buckets      []*Bucket
	defaultIndex int
	placeLast    string
}

// NewRegistry строит реестр из определений.
//
// defaultName обязан совпадать с именем одной из секций.
// Один и тот же архив может быть объявлен в нескольких секциях:
// при классификации выигрывает секция, объявленная раньше.
func NewRegistry(defs []Definition, defaultName, placeLast string) (*Registry, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("registry: at least one bucket is required")
	}

	reg := &Registry{
		buckets:      make([]*Bucket, 0, len(defs)),
		defaultIndex: -1,
		placeLast:    placeLast,
	}

	seen := make(map[string]struct{}, len(defs))
	for i, def := range defs {
		b, err := newBucket(def)
		if err != nil {
			return nil, fmt.Errorf("registry: buckets[%d]: %w", i, err)
		}
		if _, dup := seen[b.Name]; dup {
			return nil, fmt.Errorf("registry: duplicate bucket %q", b.Name)
		}
		seen[b.Name] = struct{}{}
		if b.Name == strings.TrimSpace(defaultName) {
			reg.defaultIndex = i
		}
		reg.buckets = append(reg.buckets, b)
	}

	if reg.defaultIndex < 0 {
		return nil, fmt.Errorf("registry: default bucket %q is not defined", defaultName)
	}

	return reg, nil
}

// MustDefaultRegistry возвращает реестр со встроенными списками Fallout 76.
func MustDefaultRegistry() *Registry {
	reg, err := NewRegistry(DefaultDefinitions(), DefaultBucket, DefaultPlaceLast)
	if err != nil {
		panic(err)
	}
	return reg
}

// Buckets возвращает секции в объявленном порядке.
func (r *Registry) Buckets() []*Bucket {
	return r.buckets
}

// Bucket возвращает секцию по имени.
func (r *Registry) Bucket(name string) (*Bucket, bool) {
	for _, b := range r.buckets {
		if b.Name == name {
			return b, true
		}
	}
	return nil, false
}

// Default возвращает секцию по умолчанию.
func (r *Registry) Default() *Bucket {
	return r.buckets[r.defaultIndex]
}

// PlaceLast возвращает архив, который рендерится последним среди неизвестных.
func (r *Registry) PlaceLast() string {
	return r.placeLast
}

// Total возвращает суммарное количество найденных архивов.
func (r *Registry) Total() int {
	total := 0
	for _, b := range r.buckets {
		total += b.Count()
	}
	return total
}

// Counts возвращает карту [секция] -> количество найденных архивов.
func (r *Registry) Counts() map[string]int {
	counts := make(map[string]int, len(r.buckets))
	for _, b := range r.buckets {
		counts[b.Name] = b.Count()
	}
	return counts
}

// Reset очищает найденные архивы во всех секциях.
func (r *Registry) Reset() {
	for _, b := range r.buckets {
		b.reset()
	}
}

// Clone возвращает копию реестра с пустыми matched.
//
// Статические списки разделяются между копиями, они не меняются после NewRegistry.
func (r *Registry) Clone() *Registry {
	out := &Registry{
		buckets:      make([]*Bucket, len(r.buckets)),
		defaultIndex: r.defaultIndex,
		placeLast:    r.placeLast,
	}
	for i, b := range r.buckets {
		out.buckets[i] = &Bucket{
			Name:     b.Name,
			Known:    b.Known,
			Defaults: b.Defaults,
			known:    b.known,
			matched:  make(map[string]struct{}),
		}
	}
	return out
}

// DefaultDefinitions возвращает встроенные списки секций Fallout76Custom.ini.
//
// PerkLoadoutManager.ba2 объявлен и в sResourceArchiveList2, и в
// sResourceArchive2List: достаётся первой.
func DefaultDefinitions() []Definition {
	return []Definition{
		{
			Name: "sResourceStartUpArchiveList",
			Known: []string{
				"BakaFile - Main.ba2",
				"IconTag.ba2",
				"IconSortingRatmonkeys.ba2",
				"MMM - Country Roads.ba2",
				"ImpUlt.ba2",
				"Quizzless Apalachia.ba2",
			},
		},
		{
			Name: "sResourceArchiveList2",
			Known: []string{
				"PerkLoadoutManager.ba2",
				"IUMesh.ba2",
				"MoreWhereThatCameFrom.ba2",
				"Prismatic_Lasers_76_Lightblue.ba2",
				"OptimizedSonar.ba2",
				"Silentchameleon.ba2",
				"CleanPip.ba2",
				"classicFOmus_76.ba2",
				"nootnoot.ba2",
				"MenuMusicReplacer.ba2",
				"BullBarrel.ba2",
				"EVB76NevernudeFemale - Meshes.ba2",
				"EVB76NevernudeFemale - Textures.ba2",
				"EVB76NevernudeMale - Meshes.ba2",
				"EVB76NevernudeMale - Textures.ba2",
				"EVB76 - Meshes.ba2",
				"EVB76 - Textures.ba2",
				"EVB76Nevernude - Meshes.ba2",
				"EVB76Nevernude - Textures.ba2",
				"BoxerShorts.ba2",
				"MaleUnderwear.ba2",
				"FemaleUnderwear.ba2",
			},
		},
		{
			Name: "sResourceIndexFileList",
			Known: []string{
				"UHDmap.ba2",
				"EnhancedBlood - Textures.ba2",
				"EnhancedBlood - Meshes.ba2",
				"MapMarkers.ba2",
				"Radiant_Clouds.ba2",
				"SpoilerFreeMap.ba2",
			},
		},
		{
			Name: DefaultBucket,
			Known: []string{
				"PerkLoadoutManager.ba2",
				"ChatMod.ba2",
				"ShowHealthReRedux.ba2",
				"ShowHealth.ba2",
				"CompatibleShowHealthRedux.ba2",
			},
		},
	}
}
