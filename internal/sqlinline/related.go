package sqlinline

const QSelectOutline = `--sql a6ef0e70-df1e-4aaa-bcf7-a6485cee4577
select id, title, content
from outlines
where id = $1;
`

const QSelectStyleProfile = `--sql 0ef4e83c-d6f4-4f75-8b7e-7376194e516f
select id, name, author_info, style_features, sample_text
from style_profiles
where id = $1;
`

const QSelectAudience = `--sql f8b93243-b676-4476-9790-d4b9c8d025a9
select id, name, description
from audiences
where id = $1;
`

const QSelectUser = `--sql 29f79770-3a96-45ff-818b-d79cbcf41148
select id, email
from users
where id = $1;
`
