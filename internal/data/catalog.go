package data

// Authors have three nullable name parts; at least one is required.
var Authors = &Entity{
	Name:     "authors",
	Singular: "Author",
	Table:    "authors",
	Fields: []Field{
		optText("last_name"),
		optText("first_name"),
		optText("country"),
	},
	AtLeastOne: true,
	ListQuery: `
		SELECT id, last_name, first_name, country
		FROM authors
		ORDER BY id DESC`,
}

// Publishers follow the same at-least-one rule as authors.
var Publishers = &Entity{
	Name:     "publishers",
	Singular: "Publisher",
	Table:    "publishers",
	Fields: []Field{
		optText("name"),
		optText("country"),
	},
	AtLeastOne: true,
	ListQuery: `
		SELECT id, name, country
		FROM publishers
		ORDER BY id DESC`,
}

// Books reference a tag, status, priority, author and publisher.
var Books = &Entity{
	Name:     "books",
	Singular: "Book",
	Table:    "books",
	Fields: []Field{
		text("name"),
		ref("tag_id"),
		ref("status_id"),
		ref("priority_id"),
		ref("author_id"),
		ref("publisher_id"),
		optNumber("pages"),
	},
	ListQuery: `
		SELECT
			b.id,
			b.name,
			b.tag_id,
			b.status_id,
			b.priority_id,
			b.author_id,
			b.publisher_id,
			b.pages,
			t.name AS type,
			s.name AS status,
			p.name AS priority,
			a.first_name AS author_first_name,
			a.last_name AS author_last_name,
			a.country AS author_country,
			pub.name AS publisher,
			pub.country AS publisher_country
		FROM books b
		LEFT JOIN tags t ON t.id = b.tag_id
		LEFT JOIN statuses s ON s.id = b.status_id
		LEFT JOIN priorities p ON p.id = b.priority_id
		LEFT JOIN authors a ON a.id = b.author_id
		LEFT JOIN publishers pub ON pub.id = b.publisher_id
		ORDER BY b.id DESC`,
	FKeyMessage: "Tag, status, priority, author, or publisher does not exist",
}

// Items reference an item type, status and priority.
var Items = &Entity{
	Name:     "items",
	Singular: "Item",
	Table:    "items",
	Fields: []Field{
		text("name"),
		ref("type_id"),
		ref("status_id"),
		ref("priority_id"),
	},
	ListQuery: `
		SELECT
			i.id,
			i.name,
			i.type_id,
			i.status_id,
			i.priority_id,
			it.name AS type,
			s.name AS status,
			p.name AS priority
		FROM items i
		LEFT JOIN item_types it ON it.id = i.type_id
		LEFT JOIN statuses s ON s.id = i.status_id
		LEFT JOIN priorities p ON p.id = i.priority_id
		ORDER BY i.id DESC`,
	FKeyMessage: "Type, status, or priority does not exist",
}

// Users reference a role and status; email is unique.
var Users = &Entity{
	Name:     "users",
	Singular: "User",
	Table:    "users",
	Fields: []Field{
		text("name"),
		text("email"),
		ref("role_id"),
		ref("status_id"),
	},
	ListQuery: `
		SELECT
			u.id,
			u.name,
			u.email,
			u.role_id,
			u.status_id,
			r.name AS role,
			s.name AS status
		FROM users u
		LEFT JOIN roles r ON r.id = u.role_id
		LEFT JOIN statuses s ON s.id = u.status_id
		ORDER BY u.id DESC`,
	FKeyMessage:      "Role or status does not exist",
	DuplicateMessage: "User already exists",
}

// Lookup tables, listed to active rows only.
var (
	Tags       = lookup("tags", "tags")
	Statuses   = lookup("statuses", "statuses")
	Priorities = lookup("priorities", "priorities")
	Roles      = lookup("roles", "roles")
	ItemTypes  = lookup("item-types", "item_types")
)
