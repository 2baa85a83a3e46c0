package service

import (
	"fmt"
	"strconv"

	"anoa.com/freshwash/internal/entity"
	"anoa.com/freshwash/internal/modules/admin/repository"
	"github.com/google/uuid"
)

type paramKind int

const (
	paramUUID paramKind = iota
	paramInt
)

type param struct {
	name     string
	kind     paramKind
	fallback interface{}
}

type template struct {
	name        string
	description string
	store       repository.Store
	query       string
	params      []param
}

var templates = []template{
	{
		name:        "orders_by_status",
		description: "order count and value per status",
		store:       repository.StoreLaundry,
		query: `SELECT status AS order_status, COUNT(*) AS orders, COALESCE(SUM(total_amount), 0) AS total_amount
FROM orders GROUP BY status ORDER BY status`,
	},
	{
		name:        "open_complaints",
		description: "complaints not yet resolved with their assigned staff",
		store:       repository.StoreLaundry,
		query: `SELECT c.id AS complaint_id, c.order_id, c.type AS complaint_type, c.status AS complaint_status, r.staff_id
FROM complaints c LEFT JOIN resolutions r ON r.complaint_id = c.id
WHERE c.status <> 'Resolved' ORDER BY c.id`,
	},
	{
		name:        "revenue_by_payment_mode",
		description: "payments and revenue per payment mode",
		store:       repository.StoreLaundry,
		query: `SELECT mode AS payment_mode, COUNT(*) AS payments, COALESCE(SUM(amount), 0) AS revenue
FROM payment_applications GROUP BY mode ORDER BY mode`,
	},
	{
		name:        "staff_workload",
		description: "complaints assigned to each staff member and how many are still open",
		store:       repository.StoreLaundry,
		query: `SELECT s.id AS staff_id, s.name AS staff_name,
COUNT(r.complaint_id) AS assigned, COUNT(r.complaint_id) - COUNT(r.resolve_date) AS open_count
FROM staff s LEFT JOIN resolutions r ON r.staff_id = s.id
GROUP BY s.id, s.name ORDER BY s.name`,
	},
	{
		name:        "customer_orders",
		description: "orders placed by one customer",
		store:       repository.StoreLaundry,
		query: `SELECT id AS order_id, status AS order_status, total_amount, pickup_date, delivery_date
FROM orders WHERE customer_id = @customer_id ORDER BY id DESC`,
		params: []param{{name: "customer_id", kind: paramUUID}},
	},
	{
		name:        "group_members",
		description: "members of a directory group with their role",
		store:       repository.StoreIdentity,
		query: `SELECT m.id AS member_id, m.username, m.email, l.role
FROM members m
JOIN member_group_mappings g ON g.member_id = m.id
JOIN login l ON l.member_id = m.id
WHERE g.group_id = @group_id ORDER BY m.username`,
		params: []param{{name: "group_id", kind: paramInt, fallback: entity.LaundryGroupID}},
	},
}

func findTemplate(name string) (template, bool) {
	for _, t := range templates {
		if t.name == name {
			return t, true
		}
	}
	return template{}, false
}

// bind converts raw request parameters into typed query arguments.
func (t template) bind(raw map[string]string) (map[string]interface{}, error) {
	known := make(map[string]bool, len(t.params))
	args := make(map[string]interface{}, len(t.params))

	for _, p := range t.params {
		known[p.name] = true
		value, ok := raw[p.name]
		if !ok || value == "" {
			if p.fallback == nil {
				return nil, fmt.Errorf("missing parameter %q", p.name)
			}
			args[p.name] = p.fallback
			continue
		}

		switch p.kind {
		case paramUUID:
			id, err := uuid.Parse(value)
			if err != nil {
				return nil, fmt.Errorf("parameter %q must be a uuid", p.name)
			}
			args[p.name] = id
		case paramInt:
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("parameter %q must be an integer", p.name)
			}
			args[p.name] = n
		}
	}

	for name := range raw {
		if !known[name] {
			return nil, fmt.Errorf("unknown parameter %q", name)
		}
	}
	return args, nil
}
