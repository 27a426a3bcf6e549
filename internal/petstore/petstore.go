// Package petstore is a small demo domain wired by the container: two DAOs,
// a service depending on them and a prototype-scoped cart. It backs the CLI
// and the integration tests.
package petstore

import (
	"embed"
	"fmt"

	"github.com/km-arc/go-beans/framework/beans"
	"github.com/km-arc/go-beans/framework/class"
	"github.com/km-arc/go-beans/framework/discovery"
)

// Definitions holds the demo bean definition files.
//
//go:embed *.yaml
var Definitions embed.FS

// Class names of the beans defined in petstore.yaml.
const (
	AccountDaoClass = "petstore.dao.AccountDao"
	ItemDaoClass    = "petstore.dao.ItemDao"
	ServiceClass    = "petstore.service.PetStoreService"
	CartClass       = "petstore.service.Cart"
)

// ScanPackage holds the annotated variants used by component scanning.
const ScanPackage = "petstore.annotated"

// ── DAOs ──────────────────────────────────────────────────────────────────────

// Finder is implemented by both DAOs.
type Finder interface {
	Find(id string) (string, bool)
}

type AccountDao struct {
	accounts map[string]string
}

func NewAccountDao() *AccountDao {
	return &AccountDao{accounts: map[string]string{"liuxin": "Liu Xin"}}
}

func (d *AccountDao) Find(id string) (string, bool) {
	name, ok := d.accounts[id]
	return name, ok
}

type ItemDao struct {
	Table string
	items map[string]string
}

func NewItemDao() *ItemDao {
	return &ItemDao{Table: "items", items: map[string]string{"1": "goldfish", "2": "hamster"}}
}

func (d *ItemDao) Find(id string) (string, bool) {
	item, ok := d.items[id]
	return item, ok
}

// ── Service ───────────────────────────────────────────────────────────────────

type PetStoreService struct {
	AccountDao *AccountDao
	ItemDao    *ItemDao
	Owner      string
	Version    string
}

// NewPetStoreService is the two-dependency constructor.
func NewPetStoreService(accounts *AccountDao, items *ItemDao) *PetStoreService {
	return &PetStoreService{AccountDao: accounts, ItemDao: items, Version: "1"}
}

// Describe summarises the store for the CLI.
func (s *PetStoreService) Describe() string {
	owner, _ := s.AccountDao.Find(s.Owner)
	return fmt.Sprintf("pet store v%s owned by %s (%s)", s.Version, s.Owner, owner)
}

// Cart is prototype scoped: every request gets an empty one.
type Cart struct {
	Store *PetStoreService
	Items []string
}

func (c *Cart) Add(id string) error {
	item, ok := c.Store.ItemDao.Find(id)
	if !ok {
		return fmt.Errorf("no item %q", id)
	}
	c.Items = append(c.Items, item)
	return nil
}

// ── Classes ───────────────────────────────────────────────────────────────────

// Classes returns the construction recipes of the demo domain, explicitly
// defined and annotated variants alike.
func Classes() []*class.Class {
	finder := class.TypeOf[Finder]()
	return []*class.Class{
		class.Define[AccountDao](AccountDaoClass).
			Constructor(class.New0(NewAccountDao)).
			Implements(finder).
			Class(),
		class.Define[ItemDao](ItemDaoClass).
			Constructor(class.New0(NewItemDao)).
			Property("table", class.Prop(func(d *ItemDao, v string) { d.Table = v })).
			Implements(finder).
			Class(),
		class.Define[PetStoreService](ServiceClass).
			Constructor(class.New0(func() *PetStoreService { return &PetStoreService{Version: "1"} })).
			Constructor(class.New2(NewPetStoreService, "accountDao", "itemDao")).
			Constructor(class.New3(func(a *AccountDao, i *ItemDao, version string) *PetStoreService {
				s := NewPetStoreService(a, i)
				s.Version = version
				return s
			}, "accountDao", "itemDao", "version")).
			Property("owner", class.Prop(func(s *PetStoreService, v string) { s.Owner = v })).
			Property("version", class.Prop(func(s *PetStoreService, v string) { s.Version = v })).
			Property("accountDao", class.Prop(func(s *PetStoreService, v *AccountDao) { s.AccountDao = v })).
			Property("itemDao", class.Prop(func(s *PetStoreService, v *ItemDao) { s.ItemDao = v })).
			Class(),
		class.Define[Cart](CartClass).
			Property("store", class.Prop(func(c *Cart, v *PetStoreService) { c.Store = v })).
			Class(),

		// annotated
		class.Define[AccountDao](ScanPackage+".dao.AccountDao").
			Constructor(class.New0(NewAccountDao)).
			Annotate(discovery.ComponentAnnotation, nil).
			Class(),
		class.Define[ItemDao](ScanPackage+".dao.ItemDao").
			Constructor(class.New0(NewItemDao)).
			Annotate(discovery.ComponentAnnotation, nil).
			Class(),
		class.Define[PetStoreService](ScanPackage+".service.PetStoreService").
			Annotate(discovery.ComponentAnnotation, map[string]string{"value": "petStore"}).
			Autowired("accountDao", class.TypeOf[*AccountDao](), true,
				class.Prop(func(s *PetStoreService, v *AccountDao) { s.AccountDao = v })).
			Autowired("itemDao", class.TypeOf[*ItemDao](), true,
				class.Prop(func(s *PetStoreService, v *ItemDao) { s.ItemDao = v })).
			Class(),
		class.Define[Cart](ScanPackage+".service.Cart").
			Annotate(discovery.ComponentAnnotation, nil).
			Annotate(discovery.ScopeAnnotation, map[string]string{"value": string(beans.ScopePrototype)}).
			Autowired("store", class.TypeOf[*PetStoreService](), true,
				class.Prop(func(c *Cart, v *PetStoreService) { c.Store = v })).
			Class(),
	}
}

// Table returns a class table holding Classes.
func Table() *class.Table {
	return class.NewTable(Classes()...)
}
